package models

// Dashboard is the post-registration summary: the record plus the reference
// rows for its grade. Rows missing from the tables stay nil.
type Dashboard struct {
	Registration Registration  `json:"registration"`
	Fees         *FeeStructure `json:"fees"`
	Curriculum   *Curriculum   `json:"curriculum"`
	Schedule     *Schedule     `json:"schedule"`
}
