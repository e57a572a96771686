package listings

func seedDresses() []Dress {
	return []Dress{
		{
			ID: "DRESS001", Name: "Zimmermann Silk Gown", Brand: "Zimmermann",
			Price: "$8.99", NumericPrice: 8.99, Size: "XL", Color: "Ivory",
			Condition: "Good", Active: true, Image: "/elegant-dress.png",
			Description:      "Elegant silk gown with floral embroidery, perfect for formal events.",
			Materials:        "100% Silk",
			CareInstructions: "Dry clean only",
			Category:         "Formal", DateAdded: "2025-04-01", LastUpdated: "2025-04-12",
			DeliveryMethod: DeliveryBoth,
			Tags:           []string{"Formal", "Summer"},
			PickupAddresses: []string{
				"123 Fashion Ln, Sydney NSW 2000",
				"456 Style St, Sydney NSW 2000",
			},
			RentalPeriods: []RentalPeriod{{Days: 4, Price: 8.99}, {Days: 8, Price: 14.99}},
		},
		{
			ID: "DRESS002", Name: "Valentino Red Gown", Brand: "Valentino",
			Price: "$11.70", NumericPrice: 11.7, Size: "L", Color: "Red",
			Condition: "New", Active: true, Image: "/woman-in-red-dress.png",
			Description:      "Stunning red gown perfect for special occasions.",
			Materials:        "95% Polyester, 5% Elastane",
			CareInstructions: "Hand wash cold",
			Category:         "Evening", DateAdded: "2025-04-05", LastUpdated: "2025-04-10",
			DeliveryMethod:  DeliveryPickup,
			Tags:            []string{"Evening", "Party"},
			PickupAddresses: []string{"123 Fashion Ln, Sydney NSW 2000"},
			RentalPeriods:   []RentalPeriod{{Days: 4, Price: 11.7}, {Days: 8, Price: 19.99}},
		},
		{
			ID: "DRESS003", Name: "Dior Cocktail Dress", Brand: "Dior",
			Price: "$14.81", NumericPrice: 14.81, Size: "S", Color: "Black",
			Condition: "Good", Active: true, Image: "/elegant-black-dress.png",
			Description:      "Classic black cocktail dress for any formal occasion.",
			Materials:        "70% Cotton, 30% Polyester",
			CareInstructions: "Machine wash cold",
			Category:         "Cocktail", DateAdded: "2025-04-10", LastUpdated: "2025-04-15",
			DeliveryMethod: DeliveryShipping,
			Tags:           []string{"Cocktail", "Formal"},
			RentalPeriods:  []RentalPeriod{{Days: 4, Price: 14.81}, {Days: 8, Price: 24.99}},
		},
		{
			ID: "DRESS004", Name: "Chanel Evening Gown", Brand: "Chanel",
			Price: "$19.99", NumericPrice: 19.99, Size: "M", Color: "Blue",
			Condition: "Excellent", Active: false, Image: "/blue-evening-gown.png",
			Description:      "Elegant blue evening gown with sequin details.",
			Materials:        "100% Polyester",
			CareInstructions: "Dry clean only",
			Category:         "Evening", DateAdded: "2025-04-15", LastUpdated: "2025-04-20",
			DeliveryMethod:  DeliveryBoth,
			Tags:            []string{"Evening", "Formal"},
			PickupAddresses: []string{"123 Fashion Ln, Sydney NSW 2000"},
			RentalPeriods:   []RentalPeriod{{Days: 4, Price: 19.99}, {Days: 8, Price: 34.99}},
		},
		{
			ID: "DRESS005", Name: "Gucci Floral Gown", Brand: "Gucci",
			Price: "$24.50", NumericPrice: 24.5, Size: "XS", Color: "Green",
			Condition: "Good", Active: true, Image: "/elegant-green-dress.png",
			Description:      "Stunning green gown with floral patterns.",
			Materials:        "80% Silk, 20% Cotton",
			CareInstructions: "Dry clean only",
			Category:         "Formal", DateAdded: "2025-04-20", LastUpdated: "2025-04-25",
			DeliveryMethod:  DeliveryPickup,
			Tags:            []string{"Formal", "Spring"},
			PickupAddresses: []string{"456 Style St, Sydney NSW 2000"},
			RentalPeriods:   []RentalPeriod{{Days: 4, Price: 24.5}, {Days: 8, Price: 39.99}},
		},
	}
}

func seedConditionReports() map[string][]ConditionReport {
	return map[string][]ConditionReport{
		"DRESS001": {
			{Date: "Apr 10, 2025", Report: "Inspected, minor stain on hem."},
			{Date: "Mar 15, 2025", Report: "Inspected, good condition."},
		},
		"DRESS002": {
			{Date: "Apr 12, 2025", Report: "Brand new, tags attached."},
			{Date: "Apr 5, 2025", Report: "Received from supplier, excellent condition."},
		},
	}
}

func seedAuditLogs() map[string][]AuditLogEntry {
	return map[string][]AuditLogEntry{
		"DRESS001": {
			{Date: "Apr 12, 2025", Action: "Listing updated."},
			{Date: "Apr 1, 2025", Action: "Listing created."},
		},
	}
}

func seedBookings() map[string][]Booking {
	return map[string][]Booking{
		"DRESS001": {
			{ID: "BK-10231", DressID: "DRESS001", Customer: "Sarah Johnson", CustomerID: "CUST-001", Date: "Apr 20, 2025", DeliveryType: "Pickup"},
			{ID: "BK-10102", DressID: "DRESS001", Customer: "Olivia P.", CustomerID: "CUST-003", Date: "Mar 28, 2025", DeliveryType: "Shipping"},
		},
		"DRESS002": {
			{ID: "BK-10198", DressID: "DRESS002", Customer: "Michael Brown", CustomerID: "CUST-002", Date: "Apr 18, 2025", DeliveryType: "Pickup"},
		},
	}
}
