package dto

// CreateTestRequest carries the compact creation payload exactly as a
// user would type it in the chat: CODE|NAME+ANSWERS.
type CreateTestRequest struct {
	CreatorID int64  `json:"creator_id" binding:"required"`
	Raw       string `json:"raw" binding:"required"`
}

// SubmitRequest carries a submission payload: CODE*ANSWERS.
type SubmitRequest struct {
	UserID int64  `json:"user_id" binding:"required"`
	Raw    string `json:"raw" binding:"required"`
}

// EditTestRequest carries the replacement name and key: NAME+ANSWERS.
// The code comes from the URL; EditorID must match the test's creator.
type EditTestRequest struct {
	EditorID int64  `json:"editor_id" binding:"required"`
	Raw      string `json:"raw" binding:"required"`
}

// BonusScoresRequest carries a ';'-separated decimal list: 1.1;2;3.5.
type BonusScoresRequest struct {
	EditorID int64  `json:"editor_id" binding:"required"`
	Raw      string `json:"raw" binding:"required"`
}

// RegisterUserRequest registers or refreshes a chat user.
type RegisterUserRequest struct {
	ID       int64  `json:"id" binding:"required"`
	Name     string `json:"name" binding:"required"`
	Phone    string `json:"phone"`
	Username string `json:"username"`
}

// BroadcastRequest is an admin fan-out message.
type BroadcastRequest struct {
	Text string `json:"text" binding:"required"`
}

// PurgeRequest asks for deletion of tests older than MaxAgeDays.
type PurgeRequest struct {
	MaxAgeDays int `json:"max_age_days" binding:"required,min=1"`
}
