package domain

// ChatRequest is a question for the assistant, optionally about one business.
type ChatRequest struct {
	Message    string `json:"message" validate:"required,notblank,max=2000"`
	BusinessID string `json:"businessId,omitempty"`
}

// ChatContextBusiness is the per-business context handed to the language model.
type ChatContextBusiness struct {
	ID            string              `json:"id"`
	Name          string              `json:"name"`
	Location      string              `json:"location"`
	CategoryID    string              `json:"categoryId"`
	CategoryName  string              `json:"categoryName"`
	AverageRating string              `json:"averageRating"`
	ReviewCount   int                 `json:"reviewCount"`
	Reviews       []ChatContextReview `json:"reviews"`
}

// ChatContextReview is a review reduced to what the model needs.
type ChatContextReview struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// SegmentKind distinguishes the parts of an assistant answer.
type SegmentKind string

const (
	SegmentText     SegmentKind = "text"
	SegmentBusiness SegmentKind = "business"
)

// Recommendation is a business card parsed from the answer markup.
type Recommendation struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Location    string `json:"location"`
	Category    string `json:"category"`
	Rating      string `json:"rating"`
	ReviewCount string `json:"reviewCount"`
}

// AnswerSegment is either free text or one recommended business.
type AnswerSegment struct {
	Kind     SegmentKind     `json:"type"`
	Text     string          `json:"text,omitempty"`
	Business *Recommendation `json:"business,omitempty"`
}

// ChatResponse carries the raw model answer and its parsed segments.
type ChatResponse struct {
	Response string          `json:"response"`
	Segments []AnswerSegment `json:"segments"`
}
