package client

import "time"

// Scheme is a catalog entry as returned by the API.
type Scheme struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Eligibility []string  `json:"eligibility"`
	Deadline    time.Time `json:"deadline"`
	Link        string    `json:"link"`
	Documents   []string  `json:"documents"`
	Type        string    `json:"type"`
	Level       string    `json:"level"`
	Category    []string  `json:"category,omitempty"`
	MinAge      *int      `json:"min_age,omitempty"`
	MaxAge      *int      `json:"max_age,omitempty"`
	MinIncome   *int64    `json:"min_income,omitempty"`
	MaxIncome   *int64    `json:"max_income,omitempty"`
}

// SchemeDraft is the admin input for a new scheme.  Deadline accepts the
// same free-form dates as the admin form ("2025-06-30", "June 30, 2025").
type SchemeDraft struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Eligibility []string `json:"eligibility"`
	Deadline    string   `json:"deadline"`
	Link        string   `json:"link"`
	Documents   []string `json:"documents"`
	Type        string   `json:"type"`
	Level       string   `json:"level"`
	Category    []string `json:"category,omitempty"`
}

// SchemePatch updates only the non-nil fields.
type SchemePatch struct {
	Title       *string   `json:"title,omitempty"`
	Description *string   `json:"description,omitempty"`
	Eligibility *[]string `json:"eligibility,omitempty"`
	Deadline    *string   `json:"deadline,omitempty"`
	Link        *string   `json:"link,omitempty"`
	Documents   *[]string `json:"documents,omitempty"`
	Type        *string   `json:"type,omitempty"`
	Level       *string   `json:"level,omitempty"`
	Category    *[]string `json:"category,omitempty"`
}

// SchemeFilter narrows List.  Empty fields do not restrict.
type SchemeFilter struct {
	Query    string
	Type     string
	Level    string
	Category string
}

// Notification is one entry of the notification list.
type Notification struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	SchemeID  string    `json:"scheme_id"`
	Kind      string    `json:"kind"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

// ScanResult reports one deadline scan.
type ScanResult struct {
	ScannedAt time.Time      `json:"scanned_at"`
	Scanned   int            `json:"scanned"`
	Created   []Notification `json:"created"`
	Unread    int            `json:"unread"`
}

// Message is one chat turn.
type Message struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// Reply is the assistant's answer and where it came from ("backend" or
// "fallback").
type Reply struct {
	Message Message `json:"message"`
	Source  string  `json:"source"`
}

// Profile holds the optional eligibility details of a user.
type Profile struct {
	Education string   `json:"education,omitempty"`
	Age       int      `json:"age,omitempty"`
	Location  string   `json:"location,omitempty"`
	Category  string   `json:"category,omitempty"`
	Income    int64    `json:"income,omitempty"`
	Interests []string `json:"interests,omitempty"`
}

// User is an account as returned by the API.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Profile   *Profile  `json:"profile,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Session is the result of Login or Register.
type Session struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      User      `json:"user"`
}

// Registration is the self-service sign-up input.
type Registration struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
}

// ProfileUpdate changes the signed-in user's details.
type ProfileUpdate struct {
	Name    string  `json:"name,omitempty"`
	Email   string  `json:"email,omitempty"`
	Profile Profile `json:"profile"`
}

//Personal.AI order the ending
