package content

import (
	"context"
	"fmt"
)

// samplePosts are the starter articles for a fresh installation.
var samplePosts = []CreateInput{
	{
		Title: "Warum Social Media Marketing für Ihr Unternehmen unverzichtbar ist",
		Content: `<p>In der heutigen digitalen Welt ist Social Media Marketing nicht mehr nur eine Option,
sondern eine Notwendigkeit für jedes Unternehmen, das erfolgreich sein möchte.</p>
<h3>Die Macht der sozialen Medien</h3>
<p>Mit über 4,8 Milliarden aktiven Social Media Nutzern weltweit bieten Plattformen wie Facebook,
Instagram, LinkedIn und TikTok eine unglaubliche Reichweite für Ihr Unternehmen.</p>`,
		Excerpt:   "Entdecken Sie, warum Social Media Marketing für Ihr Unternehmen unverzichtbar ist und wie es Ihnen helfen kann, Ihre Ziele zu erreichen.",
		Tags:      []string{"Social Media", "Marketing", "Digital Marketing"},
		Published: true,
	},
	{
		Title: "Google Ads vs. Meta Ads: Welche Plattform ist die richtige für Sie?",
		Content: `<p>Die Wahl zwischen Google Ads und Meta Ads ist eine der häufigsten Fragen unserer Kunden.
Beide Plattformen haben ihre Stärken, und die richtige Wahl hängt von Ihren Zielen ab.</p>
<h3>Unsere Empfehlung: Eine kombinierte Strategie</h3>
<p>Die besten Ergebnisse erzielen unsere Kunden mit Google Ads für Suchintentionen
und Meta Ads für Markenbekanntheit und Retargeting.</p>`,
		Excerpt:   "Google Ads oder Meta Ads? Erfahren Sie, welche Plattform für Ihre Marketingziele am besten geeignet ist.",
		Tags:      []string{"Google Ads", "Meta Ads", "Online Werbung", "PPC"},
		Published: true,
	},
	{
		Title: "SEO-Trends 2025: Was Sie jetzt wissen müssen",
		Content: `<p>Suchmaschinenoptimierung entwickelt sich ständig weiter. Hier sind die wichtigsten
SEO-Trends für 2025, die Ihre Website-Strategie beeinflussen werden.</p>
<h3>Lokale SEO wird wichtiger</h3>
<p>Für lokale Unternehmen ist die Optimierung für "Near Me"-Suchen entscheidend:
Google My Business Profil pflegen, lokale Keywords verwenden, positive Bewertungen sammeln.</p>`,
		Excerpt:   "Entdecken Sie die wichtigsten SEO-Trends für 2025 und erfahren Sie, wie Sie Ihre Website für die Zukunft optimieren.",
		Tags:      []string{"SEO", "Google", "Website Optimierung", "Trends 2025"},
		Published: true,
	},
}

// Seed inserts the sample posts into an empty installation. Idempotent:
// if any post already exists, nothing is written. Unlike the historical
// behavior this never runs implicitly at server start; the operator
// invokes it explicitly.
func (s *Service) Seed(ctx context.Context) (int, error) {
	existing, err := s.store.ListPosts(ctx, false)
	if err != nil {
		return 0, fmt.Errorf("failed to check existing posts: %w", err)
	}
	if len(existing) > 0 {
		s.logger.Info("posts already exist, skipping seed", "count", len(existing))
		return 0, nil
	}

	created := 0
	for _, in := range samplePosts {
		if _, err := s.Create(ctx, in); err != nil {
			return created, fmt.Errorf("failed to seed post %q: %w", in.Title, err)
		}
		created++
	}

	s.logger.Info("sample posts created", "count", created)
	return created, nil
}
