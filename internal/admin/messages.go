package admin

import "fmt"

// UpdatedMessage reports a bulk update, e.g. "1 Movie was published
// successfully." or "3 Movies were published successfully.".
func UpdatedMessage(n int64, singular, plural, verb string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s was %s successfully.", singular, verb)
	}
	return fmt.Sprintf("%d %s were %s successfully.", n, plural, verb)
}
