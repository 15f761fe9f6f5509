package seed

// File is the top-level structure of a seed file:
//
//	bookmarks:
//	  - title: google
//	    url: https://www.google.com
//	    description: Search
//	    rating: 5
type File struct {
	Bookmarks []Entry `yaml:"bookmarks"`
}

// Entry is a single bookmark in a seed file. Rating is kept loose so
// quoted and unquoted numbers are both accepted.
type Entry struct {
	Title       string `yaml:"title"`
	URL         string `yaml:"url"`
	Description string `yaml:"description"`
	Rating      any    `yaml:"rating"`
}
