package controller

import (
	"errors"
	"net/http"

	"rentdesk/internal/pkg/listings"

	"github.com/gin-gonic/gin"
)

// ListingQueryController serves the read side of the listings catalogue.
type ListingQueryController struct {
	svc *listings.Service
}

func NewListingQueryController(svc *listings.Service) *ListingQueryController {
	return &ListingQueryController{svc: svc}
}

func (h *ListingQueryController) List() gin.HandlerFunc {
	return func(c *gin.Context) {
		dresses, err := h.svc.ListDresses(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"listings": dresses, "count": len(dresses)})
	}
}

func (h *ListingQueryController) Get() gin.HandlerFunc {
	return func(c *gin.Context) {
		dress, err := h.svc.GetDress(c.Request.Context(), c.Param("dressId"))
		if err != nil {
			h.fail(c, err)
			return
		}
		c.JSON(http.StatusOK, dress)
	}
}

func (h *ListingQueryController) ConditionReports() gin.HandlerFunc {
	return func(c *gin.Context) {
		reports, err := h.svc.ConditionReports(c.Request.Context(), c.Param("dressId"))
		if err != nil {
			h.fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"reports": reports})
	}
}

func (h *ListingQueryController) AuditLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		entries, err := h.svc.AuditLog(c.Request.Context(), c.Param("dressId"))
		if err != nil {
			h.fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"auditLog": entries})
	}
}

func (h *ListingQueryController) Bookings() gin.HandlerFunc {
	return func(c *gin.Context) {
		bookings, err := h.svc.BookingsForDress(c.Request.Context(), c.Param("dressId"))
		if err != nil {
			h.fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"bookings": bookings})
	}
}

func (h *ListingQueryController) MostPopular() gin.HandlerFunc {
	return func(c *gin.Context) {
		dress, err := h.svc.MostPopularDress(c.Request.Context())
		if err != nil {
			h.fail(c, err)
			return
		}
		c.JSON(http.StatusOK, dress)
	}
}

func (h *ListingQueryController) Counts() gin.HandlerFunc {
	return func(c *gin.Context) {
		counts, err := h.svc.Counts(c.Request.Context())
		if err != nil {
			h.fail(c, err)
			return
		}
		c.JSON(http.StatusOK, counts)
	}
}

func (h *ListingQueryController) fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, listings.ErrNotFound) {
		status = http.StatusNotFound
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
