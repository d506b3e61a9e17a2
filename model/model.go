package model

// Option is one selectable entry in a catalog list.
// Disabled options are shown as "coming soon" and must not be submitted.
type Option struct {
	Value    string `json:"value"`
	Label    string `json:"label"`
	Disabled bool   `json:"disabled,omitempty"`
}

// Dimension is one independent participant filter axis (gender, age range, ...).
type Dimension struct {
	Name    string   `json:"name"`
	Options []Option `json:"options"`
}

// Question is a single research question attached to a session.
type Question struct {
	Text string `json:"text"`
}

// SessionFields carries the free-text form values of a draft. Which of the
// type-specific groups is actually emitted depends on the selected session type.
type SessionFields struct {
	SessionType          string `json:"session_type"`
	SessionName          string `json:"session_name"`
	NumberOfParticipants int    `json:"number_of_participants"`
	UserEmail            string `json:"user_email"`

	MarketName        string `json:"market_name,omitempty"`
	MarketDescription string `json:"market_description,omitempty"`

	ProductName        string `json:"product_name,omitempty"`
	ProductDescription string `json:"product_description,omitempty"`
	ProductPrice       string `json:"product_price,omitempty"`
	HasProductImage    bool   `json:"has_product_image,omitempty"`

	BrandName        string `json:"brand_name,omitempty"`
	BrandDescription string `json:"brand_description,omitempty"`
	HasBrandImage    bool   `json:"has_brand_image,omitempty"`

	Questions []Question `json:"questions,omitempty"`
}

// Payload is the JSON value sent to the webhook. Field names are the wire
// contract and must not change without versioning the downstream workflow.
type Payload struct {
	SessionType          string `json:"session_type"`
	SessionName          string `json:"session_name"`
	NumberOfParticipants int    `json:"number_of_participants"`
	UserEmail            string `json:"user_email"`

	MarketName        string `json:"market_name,omitempty"`
	MarketDescription string `json:"market_description,omitempty"`

	// the image-presence flags are pointers so the active type's flag reaches
	// the wire even when false, while the inactive types' flags stay absent
	ProductName        string `json:"product_name,omitempty"`
	ProductDescription string `json:"product_description,omitempty"`
	ProductPrice       string `json:"product_price,omitempty"`
	HasProductImage    *bool  `json:"has_product_image,omitempty"`

	BrandName        string `json:"brand_name,omitempty"`
	BrandDescription string `json:"brand_description,omitempty"`
	HasBrandImage    *bool  `json:"has_brand_image,omitempty"`

	Questions []Question `json:"questions,omitempty"`

	Categories     []string `json:"categories"`
	Gender         []string `json:"gender"`
	AgeRange       []string `json:"age_range"`
	IncomeRange    []string `json:"income_range"`
	MaritalStatus  []string `json:"marital_status"`
	HasChildren    []string `json:"has_children"`
	EducationLevel []string `json:"education_level"`
	Race           []string `json:"race"`

	Timestamp string `json:"timestamp"`
	Source    string `json:"source"`
}

// Source tags every outbound payload with the originating client.
const Source = "focus_group_ui"
