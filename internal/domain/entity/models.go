package entity

import (
	"time"
)

type UserRole string

const (
	RoleSuperAdmin UserRole = "super_admin"
	RoleAdmin      UserRole = "admin"
	RoleVoter      UserRole = "voter"
)

// ElectionStatus is admin-set; elections do not transition on their own
// when the time window opens or closes.
type ElectionStatus string

const (
	ElectionPending   ElectionStatus = "pending"
	ElectionActive    ElectionStatus = "active"
	ElectionCompleted ElectionStatus = "completed"
)

type CandidateStatus string

const (
	CandidateActive   CandidateStatus = "active"
	CandidateInactive CandidateStatus = "inactive"
)

type NotificationType string

const (
	NotificationVote        NotificationType = "vote"
	NotificationNewElection NotificationType = "new_election"
	NotificationSystem      NotificationType = "system"
)

// User is an account that casts votes. Credential and session handling live
// outside this service; only identity and role matter here.
type User struct {
	ID        string    `json:"id" db:"id"`
	FullName  string    `json:"full_name" db:"full_name"`
	Email     string    `json:"email" db:"email"`
	Role      UserRole  `json:"role" db:"role"`
	IsActive  bool      `json:"is_active" db:"is_active"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

func (User) TableName() string {
	return "users"
}

// Election owns its candidates. TotalVotes and TotalParticipants are
// denormalized from the votes ledger: the ledger is the source of truth and
// these columns are a read cache maintained inside the cast transaction.
type Election struct {
	ID                string         `json:"id" db:"id"`
	Title             string         `json:"title" db:"title"`
	Description       string         `json:"description" db:"description"`
	Type              string         `json:"type" db:"type"`
	StartDate         time.Time      `json:"start_date" db:"start_date"`
	EndDate           time.Time      `json:"end_date" db:"end_date"`
	Status            ElectionStatus `json:"status" db:"status"`
	IsPublic          bool           `json:"is_public" db:"is_public"`
	TotalVotes        int            `json:"total_votes" db:"total_votes"`
	TotalParticipants int            `json:"total_participants" db:"total_participants"`
	CreatedBy         string         `json:"created_by" db:"created_by"`
	CreatedAt         time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at" db:"updated_at"`

	// Populated on detail reads, not persisted on this row.
	Candidates []Candidate `json:"candidates,omitempty" db:"-"`
}

func (Election) TableName() string {
	return "elections"
}

// Candidate belongs to exactly one election. VoteCount follows the same
// denormalization contract as the election counters.
type Candidate struct {
	ID            string          `json:"id" db:"id"`
	ElectionID    string          `json:"election_id" db:"election_id"`
	Name          string          `json:"name" db:"name"`
	Position      string          `json:"position" db:"position"`
	Description   string          `json:"description" db:"description"`
	VisionMission string          `json:"vision_mission" db:"vision_mission"`
	Experience    string          `json:"experience" db:"experience"`
	PhotoURL      string          `json:"photo_url" db:"photo_url"`
	VoteCount     int             `json:"vote_count" db:"vote_count"`
	Status        CandidateStatus `json:"status" db:"status"`
	CreatedBy     string          `json:"created_by" db:"created_by"`
	CreatedAt     time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at" db:"updated_at"`
}

func (Candidate) TableName() string {
	return "candidates"
}

// Vote is one immutable ledger row. The table carries a UNIQUE constraint on
// (voter_id, election_id); that constraint, not application code, ultimately
// enforces one vote per voter per election under concurrency.
type Vote struct {
	ID          int64     `json:"id" db:"id"`
	VoterID     string    `json:"voter_id" db:"voter_id"`
	ElectionID  string    `json:"election_id" db:"election_id"`
	CandidateID string    `json:"candidate_id" db:"candidate_id"`
	VotedAt     time.Time `json:"voted_at" db:"voted_at"`

	// Populated via joins for voter history reads.
	ElectionTitle     string `json:"election_title,omitempty" db:"-"`
	CandidateName     string `json:"candidate_name,omitempty" db:"-"`
	CandidatePosition string `json:"candidate_position,omitempty" db:"-"`
}

func (Vote) TableName() string {
	return "votes"
}

type Notification struct {
	ID        int64            `json:"id" db:"id"`
	UserID    string           `json:"user_id" db:"user_id"`
	Type      NotificationType `json:"type" db:"type"`
	Title     string           `json:"title" db:"title"`
	Message   string           `json:"message" db:"message"`
	RelatedID string           `json:"related_id" db:"related_id"`
	IsRead    bool             `json:"is_read" db:"is_read"`
	CreatedAt time.Time        `json:"created_at" db:"created_at"`
}

func (Notification) TableName() string {
	return "notifications"
}

// VoteReceipt is returned to the voter after a successful cast.
type VoteReceipt struct {
	CandidateID string    `json:"candidate_id"`
	ElectionID  string    `json:"election_id"`
	VotedAt     time.Time `json:"voted_at"`
}

// TallyUpdate carries the counter values as they stood when the cast
// transaction committed.
type TallyUpdate struct {
	CandidateVotes    int `json:"candidate_votes"`
	TotalVotes        int `json:"total_votes"`
	TotalParticipants int `json:"total_participants"`
}

// TallyEvent is pushed to live viewers of an election after a vote commits.
type TallyEvent struct {
	ElectionID    string `json:"election_id"`
	CandidateID   string `json:"candidate_id"`
	NewVoteCount  int    `json:"new_vote_count"`
	NewTotalVotes int    `json:"new_total_votes"`
}

type CandidateStat struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Position   string  `json:"position"`
	VoteCount  int     `json:"vote_count"`
	Percentage float64 `json:"percentage"`
}

type ElectionStats struct {
	TotalVotes        int             `json:"total_votes"`
	TotalParticipants int             `json:"total_participants"`
	Candidates        []CandidateStat `json:"candidates"`
}
