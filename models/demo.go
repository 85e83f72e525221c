package models

// DemoReports returns the reports the dashboard is seeded with, most recent first
func DemoReports() []Report {
	return []Report{
		{ID: 5, Type: "Hate Speech", Platform: "Online Gaming", Status: StatusInProgress, Severity: SeverityHigh, Date: "2025-05-02", Description: "Discriminatory language used during online gaming session"},
		{ID: 4, Type: "Image Sharing", Platform: "Social Media", Status: StatusResolved, Severity: SeverityMedium, Date: "2025-05-03", Description: "Sharing altered images without consent"},
		{ID: 3, Type: "Threats", Platform: "Text Message", Status: StatusNew, Severity: SeverityHigh, Date: "2025-05-04", Description: "Threatening messages sent via text"},
		{ID: 2, Type: "Exclusion", Platform: "School Platform", Status: StatusInProgress, Severity: SeverityMedium, Date: "2025-05-04", Description: "Deliberate exclusion from online class group"},
		{ID: 1, Type: "Harassment", Platform: "Social Media", Status: StatusNew, Severity: SeverityHigh, Date: "2025-05-05", Description: "Repeated negative comments on student's social media posts"},
	}
}

// DemoPosts returns the forum threads the forum is seeded with, most recent first
func DemoPosts() []ForumPost {
	return []ForumPost{
		{
			ID:             3,
			Title:          "Physical intimidation in hallways",
			Content:        "A group of students has been pushing me around between classes. I'm scared to walk alone in the hallways...",
			Category:       CategoryPhysical.DisplayName(),
			Author:         AnonymousAuthor,
			Timestamp:      "1 day ago",
			IsAdviceSeeker: true,
			School:         "North Valley School",
			Tags:           []string{"physical", "safety", "urgent"},
		},
		{
			ID:             2,
			Title:          "Someone is spreading rumors about me online",
			Content:        "There are false stories being shared on social media about me. I don't know how to handle this situation...",
			Category:       CategoryCyber.DisplayName(),
			Author:         AnonymousAuthor,
			Timestamp:      "5 hours ago",
			IsAdviceSeeker: true,
			School:         "West Side Academy",
			Tags:           []string{"cyberbullying", "social-media", "rumors"},
		},
		{
			ID:             1,
			Title:          "Dealing with name-calling at school",
			Content:        "I've been experiencing verbal bullying in my classes. Students keep making fun of my appearance and it's affecting my confidence...",
			Category:       CategoryVerbal.DisplayName(),
			Author:         AnonymousAuthor,
			Timestamp:      "2 hours ago",
			IsAdviceSeeker: true,
			School:         "Central High School",
			Tags:           []string{"advice-needed", "school", "self-esteem"},
		},
	}
}
