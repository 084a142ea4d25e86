package client

import "time"

type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type Experience struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Company     string  `json:"company"`
	StartDate   string  `json:"start_date"`
	EndDate     *string `json:"end_date"`
	Description string  `json:"description"`
}

type Achievement struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Date        *string `json:"date"`
}

type Photo struct {
	ID  int64  `json:"id"`
	URL string `json:"url"`
}

type Profile struct {
	ID           int64         `json:"id"`
	FullName     string        `json:"full_name"`
	Bio          string        `json:"bio"`
	Location     string        `json:"location"`
	Experience   []Experience  `json:"experience"`
	Achievements []Achievement `json:"achievements"`
	Photos       []Photo       `json:"photos"`
}

type Post struct {
	ID          int64     `json:"id"`
	Content     string    `json:"content"`
	ImageURL    *string   `json:"image_url"`
	PostType    string    `json:"post_type"`
	CreatedAt   time.Time `json:"created_at"`
	User        User      `json:"user"`
	LikesCount  int64     `json:"likes_count"`
	LikedByUser bool      `json:"liked_by_user"`
}

type Job struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Company      string    `json:"company"`
	Location     string    `json:"location"`
	Salary       string    `json:"salary"`
	JobType      string    `json:"type"`
	Description  string    `json:"description"`
	Requirements []string  `json:"requirements"`
	Posted       time.Time `json:"posted"`
	Applied      bool      `json:"applied"`
	Saved        bool      `json:"saved"`
	Status       string    `json:"status"`
}

type Conversation struct {
	ID          int64     `json:"id"`
	Sender      string    `json:"sender"`
	LastMessage string    `json:"lastMessage"`
	Time        time.Time `json:"time"`
	Unread      int64     `json:"unread"`
}

type Message struct {
	ID             int64     `json:"id"`
	ConversationID int64     `json:"conversation_id"`
	SenderID       int64     `json:"sender_id"`
	Content        string    `json:"content"`
	IsRead         bool      `json:"is_read"`
	Timestamp      time.Time `json:"timestamp"`
}
