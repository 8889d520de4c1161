package event

import "fmt"

var slotTimes = []string{
	"9:00 AM", "9:45 AM", "10:30 AM", "11:00 AM", "11:45 AM", "12:30 PM",
	"1:30 PM", "2:15 PM", "3:00 PM", "3:30 PM", "4:30 PM", "5:30 PM",
}

const speakerTBA = "TBA"

func dayOneSessions(topic string, tracks []string, multiDay bool) []string {
	closing := "Networking Reception & Drinks"
	if multiDay {
		closing = "Networking Reception"
	}
	return []string{
		"Opening Keynote: The Future of " + topic,
		"State of " + topic + ": 2026 Landscape",
		"Coffee & Networking Break",
		"Deep Dive: " + trackAt(tracks, 0),
		"Workshop: Building with " + topic,
		"Lunch & Exhibition",
		"Panel: " + trackAt(tracks, 1) + " in Practice",
		"Fireside Chat: " + trackAt(tracks, 2),
		"Afternoon Break & Demos",
		"Lightning Talks: " + trackAt(tracks, 3),
		"Closing Keynote: What's Next for " + topic,
		closing,
	}
}

func dayTwoSessions(topic string, tracks []string) []string {
	return []string{
		"Case Studies: " + topic + " in Action",
		"Investor Spotlight: Funding " + topic,
		"Morning Break",
		"Lab Session: " + trackAt(tracks, 0),
		"Roundtable: " + trackAt(tracks, 1),
		"Lunch & Exhibition",
		"Workshop: " + trackAt(tracks, 2) + " Deep Dive",
		"Panel: Scaling " + topic + " Startups",
		"Afternoon Break",
		"Masterclass: " + trackAt(tracks, 3),
		"Closing: Day 2 Wrap-up",
		"Evening Networking",
	}
}

func dayThreeSessions(topic string, tracks []string) []string {
	return []string{
		"Hackathon Awards & Demos",
		"Masterclass: Advanced " + topic,
		"Morning Break",
		"Pitch Competition: " + topic + " Startups",
		"Workshop: " + trackAt(tracks, 0),
		"Lunch",
		"Fireside: " + trackAt(tracks, 1) + " Leaders",
		"Panel: " + trackAt(tracks, 2) + " Trends",
		"Break",
		"Closing Keynote: " + topic + " 2027",
		"Final Networking & Farewell",
	}
}

// BuildSchedule lays out a one to three day programme. Single-day slots carry
// a bare time; multi-day slots are prefixed with "Day N · ".
func BuildSchedule(topic string, speakers []Speaker, tracks []string, days int) []ScheduleItem {
	if days <= 1 {
		sessions := dayOneSessions(topic, tracks, false)
		out := make([]ScheduleItem, 0, len(sessions))
		for i, title := range sessions {
			out = append(out, ScheduleItem{
				Time:    slotTimes[i%len(slotTimes)],
				Title:   title,
				Speaker: speakerAt(speakers, i),
				Track:   trackAt(tracks, i),
			})
		}
		return out
	}

	if days > 3 {
		days = 3
	}
	var out []ScheduleItem
	for day := 1; day <= days; day++ {
		var sessions []string
		switch day {
		case 2:
			sessions = dayTwoSessions(topic, tracks)
		case 3:
			sessions = dayThreeSessions(topic, tracks)
		default:
			sessions = dayOneSessions(topic, tracks, true)
		}
		for i, title := range sessions {
			speaker := speakerTBA
			if len(speakers) > 0 {
				idx := (day-1)*4 + i%len(speakers)
				if idx >= len(speakers) {
					idx = i % len(speakers)
				}
				speaker = speakers[idx].Name
			}
			out = append(out, ScheduleItem{
				Time:    fmt.Sprintf("Day %d · %s", day, slotTimes[i%len(slotTimes)]),
				Title:   title,
				Speaker: speaker,
				Track:   trackAt(tracks, i),
			})
		}
	}
	return out
}

func speakerAt(speakers []Speaker, i int) string {
	if len(speakers) == 0 || speakers[i%len(speakers)].Name == "" {
		return speakerTBA
	}
	return speakers[i%len(speakers)].Name
}

func trackAt(tracks []string, i int) string {
	if len(tracks) == 0 {
		return defaultTracks[i%len(defaultTracks)]
	}
	return tracks[i%len(tracks)]
}
