package model

// HeaderInfo holds extracted protocol header fields
type HeaderInfo struct {
	Municipality  string  `json:"municipality,omitempty"`   // Municipality name in Hebrew
	CommitteeName string  `json:"committee_name,omitempty"` // e.g. מליאת המועצה
	MeetingNumber int     `json:"meeting_number,omitempty"` // 0 when not detected
	MeetingDate   string  `json:"meeting_date,omitempty"`   // ISO YYYY-MM-DD when parsed
	MeetingType   string  `json:"meeting_type,omitempty"`   // רגילה, שלא מן המניין, ...
	Location      string  `json:"location,omitempty"`
	RawText       string  `json:"raw_text,omitempty"`
	Confidence    float64 `json:"confidence"`
}

// AttendanceType categorizes how a person appears in the roster
type AttendanceType string

const (
	AttendancePresent AttendanceType = "present"
	AttendanceAbsent  AttendanceType = "absent"
	AttendanceStaff   AttendanceType = "staff"
)

// AttendeeInfo is one parsed roster entry
type AttendeeInfo struct {
	Name       string         `json:"name"`
	Role       string         `json:"role,omitempty"`
	Faction    string         `json:"faction,omitempty"`
	Attendance AttendanceType `json:"attendance"`
	Reversed   bool           `json:"reversed,omitempty"` // Source line was mirror-ordered
	RawText    string         `json:"raw_text,omitempty"`
	Confidence float64        `json:"confidence"`
}

// VoteType classifies how a vote was taken
type VoteType string

const (
	VoteCounted   VoteType = "counted"    // Explicit yes/no/abstain counts
	VoteUnanimous VoteType = "unanimous"  // פה אחד
	VoteMajority  VoteType = "majority"   // ברוב קולות
	VoteShowHands VoteType = "show_hands" // הרמת יד
	VoteRollCall  VoteType = "roll_call"  // הצבעה שמית
	VoteUnknown   VoteType = "unknown"
)

// NamedVote records how a specific member voted
type NamedVote struct {
	Name string `json:"name"`
	Vote string `json:"vote"` // בעד, נגד, נמנע
}

// VoteInfo is the extracted vote of one discussion item
type VoteInfo struct {
	Type       VoteType    `json:"type"`
	Yes        int         `json:"yes"`
	No         int         `json:"no"`
	Abstain    int         `json:"abstain"`
	Total      int         `json:"total"` // Yes+No+Abstain when Type is counted
	NamedVotes []NamedVote `json:"named_votes,omitempty"`
	RawText    string      `json:"raw_text,omitempty"`
	Confidence float64     `json:"confidence"`
	Method     string      `json:"method,omitempty"` // pattern, ollama, openai
}

// DecisionStatus is the outcome of a discussion item
type DecisionStatus string

const (
	DecisionApproved      DecisionStatus = "approved"
	DecisionRejected      DecisionStatus = "rejected"
	DecisionRemoved       DecisionStatus = "removed"  // ירד מסדר היום
	DecisionInformational DecisionStatus = "info"     // לידיעה
	DecisionDeferred      DecisionStatus = "deferred" // נדחה לישיבה
	DecisionUnknown       DecisionStatus = "unknown"
)

// HebrewLabel returns the Hebrew wording used in protocols for a status
func (s DecisionStatus) HebrewLabel() string {
	switch s {
	case DecisionApproved:
		return "אושר"
	case DecisionRejected:
		return "לא אושר"
	case DecisionRemoved:
		return "ירד מסדר היום"
	case DecisionInformational:
		return "לידיעה"
	case DecisionDeferred:
		return "נדחה"
	default:
		return "לא ידוע"
	}
}

// DecisionInfo is the extracted decision of one discussion item
type DecisionInfo struct {
	Status     DecisionStatus `json:"status"`
	Text       string         `json:"text,omitempty"` // Decision rationale when found
	Conditions []string       `json:"conditions,omitempty"`
	RawText    string         `json:"raw_text,omitempty"`
	Confidence float64        `json:"confidence"`
	Method     string         `json:"method,omitempty"`
}

// FundingSource is one (source, amount) pair of a budget breakdown
type FundingSource struct {
	Name   string `json:"name"`
	Amount int64  `json:"amount"` // Local currency units, non-negative
}

// BudgetInfo is the extracted budget of one discussion item.
// Total is the maximum currency amount mentioned in the item; the breakdown
// is not distinguished from the total by magnitude alone.
type BudgetInfo struct {
	Total      int64           `json:"total"` // Non-negative
	Currency   string          `json:"currency"`
	Sources    []FundingSource `json:"sources,omitempty"`
	RawText    string          `json:"raw_text,omitempty"`
	Confidence float64         `json:"confidence"`
}

// DialogueEntry is one speaker turn in a discussion
type DialogueEntry struct {
	Speaker    string `json:"speaker"`
	Role       string `json:"role,omitempty"`
	Content    string `json:"content"`
	IsQuestion bool   `json:"is_question,omitempty"`
}

// DiscussionItem is a fully extracted agenda item
type DiscussionItem struct {
	Number        string          `json:"number"` // String since items may be lettered
	Title         string          `json:"title,omitempty"`
	Description   string          `json:"description,omitempty"`
	ExpertOpinion string          `json:"expert_opinion,omitempty"` // דברי הסבר
	Dialogue      []DialogueEntry `json:"dialogue,omitempty"`
	Vote          *VoteInfo       `json:"vote,omitempty"`
	Decision      *DecisionInfo   `json:"decision,omitempty"`
	Budget        *BudgetInfo     `json:"budget,omitempty"`
	Categories    []string        `json:"categories,omitempty"`
	RawText       string          `json:"raw_text,omitempty"`
	Start         int             `json:"start,omitempty"`
	End           int             `json:"end,omitempty"`
	Confidence    float64         `json:"confidence"`
}

// ProtocolRecord is the aggregated result of extracting one document
type ProtocolRecord struct {
	FormatCode  string           `json:"format"` // Which municipality format parsed it
	Header      HeaderInfo       `json:"header"`
	Attendees   []AttendeeInfo   `json:"attendees,omitempty"`
	Absent      []AttendeeInfo   `json:"absent,omitempty"`
	Staff       []AttendeeInfo   `json:"staff,omitempty"`
	Discussions []DiscussionItem `json:"discussions,omitempty"`
	Reversed    bool             `json:"reversed"` // Document arrived mirror-ordered
	Confidence  float64          `json:"confidence"`
}
