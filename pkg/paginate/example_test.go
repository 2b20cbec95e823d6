package paginate_test

import (
	"fmt"

	"github.com/d1ks/d1ks/pkg/paginate"
)

func ExampleWindow() {
	// Compute the page-number window for page 7 of 12
	nav := paginate.Window(7, 12)

	fmt.Println("Pages:", nav.Pages)
	fmt.Println("Has prev:", nav.HasPrev)
	fmt.Println("Has next:", nav.HasNext)

	// Output:
	// Pages: [5 6 7 8 9]
	// Has prev: true
	// Has next: true
}

func ExampleTotalPages() {
	// 23 documents at 10 per page fill 3 pages
	fmt.Println(paginate.TotalPages(23, 10))

	// Output:
	// 3
}
