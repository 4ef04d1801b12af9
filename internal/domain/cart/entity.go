// internal/domain/cart/entity.go
package cart

import "time"

// Item represents a purchasable grade+subject combination held in a cart.
// Price is in cents and fixed at add time; the catalog is not re-queried.
type Item struct {
	ItemID      string    `json:"item_id"`
	GradeID     int64     `json:"grade_id"`
	GradeName   string    `json:"grade_name"`
	SubjectID   int64     `json:"subject_id"`
	SubjectName string    `json:"subject_name"`
	Price       int64     `json:"price"`
	Quantity    int       `json:"quantity"`
	AddedAt     time.Time `json:"added_at"`
}

// Key is the composite identity of a cart entry. A cart holds at most one
// item per key; ItemID alone is not enough because the same course id can
// appear under different grade/subject combinations.
type Key struct {
	ItemID      string `json:"item_id"`
	GradeName   string `json:"grade_name"`
	SubjectName string `json:"subject_name"`
}

// Key returns the identity key of an item
func (i Item) Key() Key {
	return Key{
		ItemID:      i.ItemID,
		GradeName:   i.GradeName,
		SubjectName: i.SubjectName,
	}
}

// Totals represents calculated cart totals
type Totals struct {
	ItemCount     int   `json:"item_count"`     // Number of unique items
	TotalQuantity int   `json:"total_quantity"` // Sum of all quantities
	TotalAmount   int64 `json:"total_amount"`   // Sum of price * quantity, in cents
}

// Snapshot is an immutable view of a cart at one point in time
type Snapshot struct {
	Items  []Item `json:"items"`
	Totals Totals `json:"totals"`
}
