package shared

// Cuisines is the fixed category list; each one becomes an independent
// upstream query during fan-out.
var Cuisines = []string{
	"American", "Chinese", "Cocktail Bar", "French", "Indian", "Italian",
	"Japanese", "Korean", "Mediterranean", "Mexican", "New American",
	"Seafood", "Steakhouse", "Sushi", "Thai",
}
