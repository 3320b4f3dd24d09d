package testsite

// TwoPages is a two-page chain using root-relative next links.
func TwoPages() map[string]Page {
	return map[string]Page{
		"/": {
			Quotes: []Quote{
				{
					Text:   "“The world as we have created it is a process of our thinking. It cannot be changed without changing our thinking.”",
					Author: "Albert Einstein",
					Tags:   []string{"change", "deep-thoughts", "thinking", "world"},
				},
				{
					Text:   "“It is our choices, Harry, that show what we truly are, far more than our abilities.”",
					Author: "J.K. Rowling",
					Tags:   []string{"abilities", "choices"},
				},
			},
			Next: "/page/2/",
		},
		"/page/2/": {
			Quotes: []Quote{
				{
					Text:   "“This life is what you make it.”",
					Author: "Marilyn Monroe",
					Tags:   []string{"friends", "heartbreak", "inspirational", "life", "love", "sisters"},
				},
				{
					Text:   "“A day without sunshine is like, you know, night.”",
					Author: "Steve Martin",
					Tags:   []string{},
				},
			},
		},
	}
}

// Cycle is a two-page chain whose second page links back to the first.
func Cycle() map[string]Page {
	pages := TwoPages()

	second := pages["/page/2/"]
	second.Next = "/"
	pages["/page/2/"] = second

	return pages
}
