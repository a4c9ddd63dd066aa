package insurance

import (
	"fmt"
	"math/rand"
)

// ReferenceGenerator produces payment reference numbers.
type ReferenceGenerator func() string

// RandomReference returns "REF-" followed by six random digits
// (100000-999999). Uniqueness is not guaranteed.
func RandomReference() string {
	return fmt.Sprintf("REF-%d", 100000+rand.Intn(900000))
}
