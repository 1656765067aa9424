package catalog

import "github.com/samber/lo"

const sampleStream = "https://test-streams.mux.dev/x36xhzz/x36xhzz.m3u8"

// Sample returns the catalog used until an admin supplies one.
func Sample() *Catalog {
	return lo.Must(New(sampleItems()))
}

func sampleItems() []*Item {
	return []*Item{
		{
			ID:          "1",
			Kind:        Single,
			Title:       "Interstellar Mission",
			Description: "A team of explorers travel through a wormhole in space in an attempt to ensure humanity's survival. A visually stunning masterpiece about love, time, and space.",
			Genres:      []string{"Sci-Fi", "Adventure", "Drama"},
			Duration:    "2h 49m",
			Rating:      4.8,
			Year:        2024,
			PosterURL:   "https://images.unsplash.com/photo-1534447677768-be436bb09401?auto=format&fit=crop&q=80&w=1200",
			PrimaryURL:  sampleStream,
			Cast:        []string{"Matthew M.", "Anne H.", "Jessica C."},
			Director:    "Christopher Nolan",
		},
		{
			ID:          "2",
			Kind:        Episodic,
			Title:       "Cyber City Chronicles",
			Description: "In a dystopia where technology rules, one hacker tries to bring down the system. A gritty cyberpunk saga.",
			Genres:      []string{"Sci-Fi", "Action", "Thriller"},
			Duration:    "45m Avg",
			Rating:      4.6,
			Year:        2023,
			PosterURL:   "https://images.unsplash.com/photo-1626814026160-2237a95fc5a0?auto=format&fit=crop&q=80&w=1200",
			Cast:        []string{"Keanu R.", "Carrie-Anne M."},
			Director:    "Lana W.",
			Episodes: []*Episode{
				{ID: "e1", Title: "The Awakening", Season: 1, Number: 1, URL: sampleStream, Duration: "48m", Description: "Neo wakes up to a new reality."},
				{ID: "e2", Title: "The Training", Season: 1, Number: 2, URL: sampleStream, Duration: "45m", Description: "Learning the rules of the simulation."},
			},
		},
		{
			ID:          "3",
			Kind:        Single,
			Title:       "The Last Samurai",
			Description: "An American military advisor embraces the Samurai culture he was hired to destroy after being captured in battle.",
			Genres:      []string{"Action", "Drama", "History"},
			Duration:    "2h 34m",
			Rating:      4.7,
			Year:        2003,
			PosterURL:   "https://images.unsplash.com/photo-1614583225154-5fcdda07019e?auto=format&fit=crop&q=80&w=1200",
			PrimaryURL:  sampleStream,
			Cast:        []string{"Tom C.", "Ken W."},
			Director:    "Edward Zwick",
		},
		{
			ID:          "4",
			Kind:        Single,
			Title:       "Mountain Peak",
			Description: "A documentary following the most dangerous climb of K2.",
			Genres:      []string{"Documentary", "Adventure"},
			Duration:    "1h 30m",
			Rating:      4.2,
			Year:        2022,
			PosterURL:   "https://images.unsplash.com/photo-1519681393784-d120267933ba?auto=format&fit=crop&q=80&w=1200",
			PrimaryURL:  sampleStream,
			Cast:        []string{"Nims Purja"},
			Director:    "Torquil Jones",
		},
		{
			ID:          "5",
			Kind:        Episodic,
			Title:       "Chef's Kitchen",
			Description: "World-renowned chefs share their personal stories and inspirations.",
			Genres:      []string{"Documentary", "Lifestyle"},
			Duration:    "50m Avg",
			Rating:      4.9,
			Year:        2021,
			PosterURL:   "https://images.unsplash.com/photo-1556910103-1c02745a30bf?auto=format&fit=crop&q=80&w=1200",
			Cast:        []string{"Massimo Bottura", "Dan Barber"},
			Director:    "David Gelb",
			Episodes: []*Episode{
				{ID: "c1", Title: "Italy", Season: 1, Number: 1, URL: sampleStream, Duration: "50m"},
			},
		},
	}
}
