// Package directory holds the built-in list of candidate profiles the app
// presents as nearby users. The list is fixed for the process lifetime;
// there is no backend to fetch real users from.
package directory

// User is a candidate profile from the directory. Records are immutable
// once defined.
type User struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Bio       string `json:"bio,omitempty"`
	Distance  string `json:"distance,omitempty"`
	ImageRef  string `json:"imageUri,omitempty"`
}

// DisplayName returns the user's first name, the form notifications use.
func (u User) DisplayName() string {
	return u.FirstName
}

var users = []User{
	{
		ID:        "1",
		FirstName: "Sophia",
		LastName:  "Williams",
		Bio:       "Avid reader, tea lover, and amateur painter. Always exploring new things.",
		Distance:  "50 m",
		ImageRef:  "assets/profile_pictures/profile1.jpeg",
	},
	{
		ID:        "2",
		FirstName: "Emily",
		LastName:  "Johnson",
		Bio:       "A chef in the making. Let's talk food, art, and travel!",
		Distance:  "80 m",
		ImageRef:  "assets/profile_pictures/profile2.jpeg",
	},
	{
		ID:        "3",
		FirstName: "James",
		LastName:  "Brown",
		Bio:       "Tech enthusiast, cyclist, and nature lover. Always up for an adventure.",
		Distance:  "100 m",
		ImageRef:  "assets/profile_pictures/profile3.jpeg",
	},
	{
		ID:        "4",
		FirstName: "Olivia",
		LastName:  "Martinez",
		Bio:       "Writer and dreamer. Let's chat about books and creativity!",
		Distance:  "30 m",
		ImageRef:  "assets/profile_pictures/profile4.jpeg",
	},
	{
		ID:        "5",
		FirstName: "Isabella",
		LastName:  "Garcia",
		Bio:       "Music is my life. Guitar player and occasional singer.",
		Distance:  "20 m",
		ImageRef:  "assets/profile_pictures/profile5.jpeg",
	},
}

// Directory is the read-only candidate universe.
type Directory struct {
	users []User
	byID  map[string]User
}

// New returns the built-in directory.
func New() *Directory {
	return newWith(users)
}

// NewWith returns a directory over a caller-supplied user list. Intended
// for tests that need a controlled pool.
func NewWith(list []User) *Directory {
	return newWith(list)
}

func newWith(list []User) *Directory {
	d := &Directory{
		users: make([]User, len(list)),
		byID:  make(map[string]User, len(list)),
	}
	copy(d.users, list)
	for _, u := range d.users {
		d.byID[u.ID] = u
	}
	return d
}

// All returns the directory contents in definition order. The returned
// slice is a copy; callers may not mutate directory state through it.
func (d *Directory) All() []User {
	out := make([]User, len(d.users))
	copy(out, d.users)
	return out
}

// ByID looks up a user by id.
func (d *Directory) ByID(id string) (User, bool) {
	u, ok := d.byID[id]
	return u, ok
}

// Len returns the number of directory entries.
func (d *Directory) Len() int {
	return len(d.users)
}
