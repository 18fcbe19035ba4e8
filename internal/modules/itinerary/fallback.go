package itinerary

// FallbackRawText marks a result that carries the canned plan instead of generated output.
const FallbackRawText = "Backup response used due to API timeout or failure"

func headoutSlot(timeSlot string, id int64, group, variant, duration, location, notes string) *PlannedSlot {
	return &PlannedSlot{
		TimeSlot:      timeSlot,
		ExperienceID:  NumericID(id),
		VendorID:      "headout",
		TourID:        NumericID(id),
		VariantID:     NumericID(id),
		TourGroupName: group,
		VariantName:   variant,
		Duration:      duration,
		Location:      location,
		Notes:         notes,
	}
}

// FallbackDocument returns a fresh copy of the fixed two-day Paris plan served when the
// completion endpoint cannot be reached. It does not reflect the user's request or live inventory.
func FallbackDocument() *ItineraryDocument {
	return &ItineraryDocument{
		Days: []DaySlots{
			{
				Index: 1,
				Morning: headoutSlot("09:00-12:00", 3909,
					"Louvre Museum Reserved Access Tickets with Optional Audioguide",
					"Reserved Access with Audio Guide", "3h",
					"Louvre Museum, 75001 Paris",
					"Start early to beat the crowds. The audio guide gives context on the major collections."),
				Afternoon: headoutSlot("14:00-16:00", 6235,
					"Orsay Museum Fast-Track Tickets",
					"Fast-Track Entry", "2h",
					"Musée d'Orsay, 75007 Paris",
					"Short walk across the Seine from the Louvre. Impressionist galleries on the top floor."),
				Evening: headoutSlot("17:30-19:30", 23604,
					"Eiffel Tower Guided Tour by Elevator: Summit or Second Floor",
					"Guided Tour to Summit", "2h",
					"Eiffel Tower, Champ de Mars, 75007 Paris",
					"Sunset views from the summit. Arrive 15 minutes before the tour starts."),
			},
			{
				Index: 2,
				Morning: headoutSlot("10:00-12:00", 8008,
					"Sainte-Chapelle and Conciergerie Tickets",
					"Combined Entry Tickets", "2h",
					"Île de la Cité, 75001 Paris",
					"Visit Sainte-Chapelle first while the morning light fills the stained glass."),
				Afternoon: headoutSlot("14:30-16:30", 8006,
					"Self-guided tour of Palais Garnier",
					"Timed Entry Ticket", "2h",
					"Palais Garnier, Place de l'Opéra, 75009 Paris",
					"Explore the grand foyer and auditorium at your own pace."),
				Evening: &PlannedSlot{},
			},
		},
		Notes: OptimizationNotes{
			CrowdAvoidance:    "Museums are scheduled at opening or mid-afternoon when queues are shortest, with timed or fast-track entry throughout.",
			Logistics:         "Geographically clustered attractions by day. Day 1 covers the Left Bank museums and the Eiffel Tower area, Day 2 covers Île de la Cité and the Opera district.",
			ValueOptimization: "Combined Sainte-Chapelle and Conciergerie entry saves over separate tickets, and audio guides replace pricier guided tours where possible.",
			ExperienceVariety: "Mixes world-class art, Gothic architecture, opera heritage and panoramic city views.",
		},
	}
}
