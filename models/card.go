package models

// WhiteCard is an answer card held in hands and piles. The ID is assigned
// once when the card is drawn from the catalog into a session and stays
// stable for the life of that session.
type WhiteCard struct {
	ID   string `json:"id"`
	Text string `json:"text"`
	Pack string `json:"pack"`
}

// BlackCard is a prompt card. Pick is how many white cards a submission
// against it must contain (always >= 1).
type BlackCard struct {
	ID   string `json:"id"`
	Text string `json:"text"`
	Pick int    `json:"pick"`
	Pack string `json:"pack"`
}

// Pack is one named card bundle from the pack index file.
type Pack struct {
	Name        string      `json:"name"`
	Official    bool        `json:"official"`
	Description string      `json:"description"`
	White       []string    `json:"white"`
	Black       []BlackSpec `json:"black"`
}

// BlackSpec is a black card as written in the pack index, before any
// session id is assigned.
type BlackSpec struct {
	Text string `json:"text"`
	Pick int    `json:"pick"`
}

// PackInfo is the summary clients get when listing the catalog.
type PackInfo struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Official    bool   `json:"official"`
	Description string `json:"description"`
	WhiteCount  int    `json:"whiteCount"`
	BlackCount  int    `json:"blackCount"`
}
