package scryfall

import "fmt"

// Card is the slice of Scryfall's card object the tracker needs: the
// identity, printing and legality data behind one (name, set, rarity)
// printing.
type Card struct {
	ID              string     `json:"id"`
	OracleID        string     `json:"oracle_id"`
	ArenaID         *int       `json:"arena_id,omitempty"`
	Name            string     `json:"name"`
	Lang            string     `json:"lang"`
	Layout          string     `json:"layout"`
	SetCode         string     `json:"set"`
	SetName         string     `json:"set_name"`
	CollectorNumber string     `json:"collector_number"`
	Rarity          string     `json:"rarity"`
	Digital         bool       `json:"digital"`
	Games           []string   `json:"games,omitempty"`
	Legalities      Legalities `json:"legalities"`
}

// Legalities carries the formats the tracker filters on.
type Legalities struct {
	Standard string `json:"standard"`
	Historic string `json:"historic"`
	Explorer string `json:"explorer"`
	Alchemy  string `json:"alchemy"`
	Brawl    string `json:"brawl"`
}

// OnArena reports whether this printing exists in the Arena client and
// can therefore be owned or crafted there.
func (c *Card) OnArena() bool {
	if c.ArenaID != nil {
		return true
	}
	for _, g := range c.Games {
		if g == "arena" {
			return true
		}
	}
	return false
}

// SearchResult is one page of a /cards/search response.
type SearchResult struct {
	Object     string  `json:"object"`
	TotalCards int     `json:"total_cards"`
	HasMore    bool    `json:"has_more"`
	NextPage   string  `json:"next_page"`
	Data       []*Card `json:"data"`
}

// APIError is Scryfall's structured error payload.
type APIError struct {
	Status  int    `json:"status"`
	Code    string `json:"code"`
	Details string `json:"details"`
}

// Error implements the error interface for APIError.
func (e *APIError) Error() string {
	return fmt.Sprintf("scryfall API error %d (%s): %s", e.Status, e.Code, e.Details)
}

// NotFoundError represents a 404 from the API: the card (or page) does
// not exist, which callers treat as "zero printings" rather than a
// failure.
type NotFoundError struct {
	URL string
}

// Error implements the error interface for NotFoundError.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("not found: %s", e.URL)
}

// IsNotFound returns true if the error is a NotFoundError.
func IsNotFound(err error) bool {
	_, ok := err.(*NotFoundError)
	return ok
}
