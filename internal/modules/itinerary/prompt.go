package itinerary

import (
	"fmt"
	"strings"
)

// describeTravelers renders the group as "2 adults, 1 child and 1 infant", skipping
// empty categories.
func describeTravelers(t Travelers) string {
	var parts []string
	add := func(n int, singular, plural string) {
		switch {
		case n == 1:
			parts = append(parts, fmt.Sprintf("1 %s", singular))
		case n > 1:
			parts = append(parts, fmt.Sprintf("%d %s", n, plural))
		}
	}
	add(t.Adults, "adult", "adults")
	add(t.Children, "child", "children")
	add(t.Infants, "infant", "infants")
	add(t.Seniors, "senior", "seniors")

	if len(parts) <= 1 {
		return strings.Join(parts, "")
	}
	return strings.Join(parts[:len(parts)-1], ", ") + " and " + parts[len(parts)-1]
}

// BuildPrompt embeds the trip parameters and the exact output schema into the
// instruction sent as the first user turn.
func BuildPrompt(req TripRequest) string {
	return fmt.Sprintf(`Role: You are an expert travel itinerary optimizer for Headout experiences.
Use the connected Headout tools to find bookable experiences, variants, tours and time slots
for the traveler's destination and dates.

PROCESS:
1. Identify the destination, dates and group composition from the request below.
2. Assess which of the requested attractions have bookable experiences on those dates.
3. Build a day-by-day plan that clusters nearby attractions, avoids peak crowds and respects
   group eligibility and age restrictions.
4. Check availability for every experience you include on the date it is scheduled.

OUTPUT FORMAT (MANDATORY):
Return ONLY a JSON object with EXACTLY this structure. No text before or after it.
{
  "itinerary": {
    "day1": {
      "morning": {
        "timeSlot": "HH:MM-HH:MM",
        "experienceId": number,
        "vendorId": "headout",
        "tourId": number,
        "variantId": number,
        "tourGroupName": "string",
        "variantName": "string",
        "duration": "Xh Ym",
        "location": "string",
        "notes": "string"
      },
      "afternoon": { same 10 fields as morning },
      "evening": { same 10 fields as morning }
    },
    "day2": { same structure as day1 },
    "optimizationNotes": {
      "crowdAvoidance": "string",
      "logistics": "string",
      "valueOptimization": "string",
      "experienceVariety": "string"
    }
  }
}

RULES:
- Use keys day1 through day%d, one per trip day.
- Every slot you include carries ALL 10 fields: timeSlot, experienceId, vendorId, tourId, variantId,
  tourGroupName, variantName, duration, location, notes.
- experienceId, tourId and variantId are numbers taken from the Headout tools.
- To leave a slot free, set experienceId, tourId and variantId to 0 and the strings to "".
- optimizationNotes carries all 4 fields.
- Do not use price tools.
- Do not include experiences the traveler did not mention.

REQUEST:
Generate a %d day optimised itinerary for %s, traveling from %s to %s.
They are visiting %s.`,
		req.DayCount(),
		req.DayCount(),
		describeTravelers(req.Travelers),
		req.StartDate,
		req.EndDate,
		strings.Join(req.Attractions, ", "),
	)
}
