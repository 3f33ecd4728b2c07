package models

// StarterBooks returns the example catalogue shown before setup completes
// and offered as a starter pack during onboarding. Ids are assigned fresh
// on every call so seeded copies never collide with real entries.
func StarterBooks() []Book {
	seeds := []Book{
		{
			ISBN: "9780141439518", Title: "Pride and Prejudice", Author: "Jane Austen",
			Genres: []string{"Classic", "Romance"}, Tags: []string{"Essential", "example", "dummy"}, MinAge: 12,
			CoverURL:       "https://covers.openlibrary.org/b/id/14549557-L.jpg",
			EstimatedValue: 450, Summary: "A romantic novel of manners following Elizabeth Bennet.",
		},
		{
			ISBN: "9780743273565", Title: "The Great Gatsby", Author: "F. Scott Fitzgerald",
			Genres: []string{"Classic", "Fiction"}, Tags: []string{"American Dream", "example", "dummy"}, MinAge: 14,
			CoverURL:       "https://covers.openlibrary.org/b/id/8408332-L.jpg",
			EstimatedValue: 600, Summary: "Jay Gatsby's pursuit of Daisy Buchanan in the Jazz Age.",
		},
		{
			ISBN: "9780439139601", Title: "Harry Potter & Sorcerer's Stone", Author: "J.K. Rowling",
			Genres: []string{"Fantasy", "Kid"}, Tags: []string{"Magic", "example", "dummy"}, MinAge: 9,
			CoverURL:       "https://covers.openlibrary.org/b/id/10522194-L.jpg",
			EstimatedValue: 800, Summary: "A young wizard's first year at Hogwarts.",
		},
		{
			ISBN: "9780141381381", Title: "Diary of a Wimpy Kid", Author: "Jeff Kinney",
			Genres: []string{"Comedy", "Kid"}, Tags: []string{"School", "example", "dummy"}, MinAge: 7,
			CoverURL:       "https://covers.openlibrary.org/b/id/11130384-L.jpg",
			EstimatedValue: 299, Summary: "Middle school life as told by Greg Heffley.",
		},
		{
			ISBN: "9780345391803", Title: "The Hitchhiker's Guide to the Galaxy", Author: "Douglas Adams",
			Genres: []string{"Sci-Fi", "Comedy"}, Tags: []string{"Space", "example", "dummy"}, MinAge: 10,
			CoverURL:       "https://covers.openlibrary.org/b/id/12632205-L.jpg",
			EstimatedValue: 350, Summary: "Arthur Dent travels the galaxy after Earth's destruction.",
		},
		{
			ISBN: "9780064404990", Title: "The Giver", Author: "Lois Lowry",
			Genres: []string{"Dystopian", "Young Adult"}, Tags: []string{"example", "dummy"}, MinAge: 12,
			CoverURL:       "https://covers.openlibrary.org/b/id/14540455-L.jpg",
			EstimatedValue: 400, Summary: "In a world with no pain or color, Jonas receives memories.",
		},
		{
			ISBN: "9780140228021", Title: "Malgudi Days", Author: "R.K. Narayan",
			Genres: []string{"Indian Fiction", "Classic"}, Tags: []string{"example", "India", "dummy"}, MinAge: 10,
			CoverURL:       "https://covers.openlibrary.org/b/id/14352123-L.jpg",
			EstimatedValue: 250, Summary: "Short stories set in the town of Malgudi.",
		},
		{
			ISBN: "9780060244194", Title: "Where the Wild Things Are", Author: "Maurice Sendak",
			Genres: []string{"Picture Book", "Preschool"}, Tags: []string{"example", "dummy"}, MinAge: 3,
			CoverURL:       "https://covers.openlibrary.org/b/id/10123512-L.jpg",
			EstimatedValue: 300, Summary: "Max's journey to the land of wild things.",
		},
	}

	for i := range seeds {
		seeds[i].ID = NewID()
		seeds[i].Status = StatusUnread
		seeds[i].Condition = ConditionGood
	}
	return seeds
}

// InitialState returns the hard-coded pre-setup state: demo catalogue,
// no users, default settings. Load falls back to it whenever the slot is
// empty or unreadable.
func InitialState() AppState {
	return AppState{
		IsSetupComplete: false,
		IsDemoMode:      true,
		Books:           StarterBooks(),
		Users:           []User{},
		Locations:       []Location{},
		Loans:           []Loan{},
		Theme:           "dark",
		AISettings:      DefaultAISettings(),
		DBSettings:      DefaultDBSettings(),
		BackupSettings:  DefaultBackupSettings(),
		QOLSettings:     DefaultQOLSettings(),
	}
}
