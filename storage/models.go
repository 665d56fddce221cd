package storage

import "time"

const (
	CycleStatusNext      = "next"
	CycleStatusOngoing   = "ongoing"
	CycleStatusCompleted = "completed"
)

const (
	PeriodMonthly   = "monthly"
	PeriodBiMonthly = "bi-monthly"
)

type Cycle struct {
	ID                string    `dynamodbav:"PK" json:"id"`
	Status            string    `dynamodbav:"Status" json:"status"`
	AreaID            string    `dynamodbav:"AreaID" json:"areaId"`
	Period            string    `dynamodbav:"Period" json:"period"`
	StartDate         time.Time `dynamodbav:"StartDate" json:"startDate"`
	EndDate           time.Time `dynamodbav:"EndDate" json:"endDate"`
	ValidationEndDate time.Time `dynamodbav:"ValidationEndDate" json:"validationEndDate"`
}

type Nomination struct {
	CycleID       string    `dynamodbav:"PK" json:"cycleId"`
	VoterID       string    `dynamodbav:"SK" json:"voterId"`
	ID            string    `dynamodbav:"ID" json:"id"`
	NomineeID     string    `dynamodbav:"NomineeID" json:"nomineeId"`
	Areas         []string  `dynamodbav:"Areas" json:"areas"`
	Justification string    `dynamodbav:"Justification" json:"justification"`
	Remarks       string    `dynamodbav:"Remarks" json:"remarks,omitempty"`
	CreatedAt     time.Time `dynamodbav:"CreatedAt" json:"createdAt"`
}

type Validation struct {
	CycleID     string    `dynamodbav:"PK" json:"cycleId"`
	ValidatorID string    `dynamodbav:"SK" json:"validatorId"`
	ID          string    `dynamodbav:"ID" json:"id"`
	NomineeID   string    `dynamodbav:"NomineeID" json:"nomineeId"`
	CreatedAt   time.Time `dynamodbav:"CreatedAt" json:"createdAt"`
}

type Winner struct {
	CycleID   string    `dynamodbav:"PK" json:"cycleId"`
	NomineeID string    `dynamodbav:"NomineeID" json:"nomineeId"`
	CreatedAt time.Time `dynamodbav:"CreatedAt" json:"createdAt"`
}

type Profile struct {
	ID         string   `dynamodbav:"PK" json:"id"`
	FirstName  string   `dynamodbav:"FirstName" json:"firstName"`
	LastName   string   `dynamodbav:"LastName" json:"lastName"`
	Email      string   `dynamodbav:"Email" json:"email"`
	Department string   `dynamodbav:"Department" json:"department"`
	AvatarURL  string   `dynamodbav:"AvatarURL" json:"avatarUrl"`
	Roles      []string `dynamodbav:"Roles" json:"roles"`
}

type AreaItem struct {
	Title       string `dynamodbav:"Title" json:"title"`
	Description string `dynamodbav:"Description" json:"description"`
}

type NominationArea struct {
	ID       string     `dynamodbav:"PK" json:"id"`
	Category string     `dynamodbav:"Category" json:"category"`
	Areas    []AreaItem `dynamodbav:"Areas" json:"areas"`
	Icon     string     `dynamodbav:"Icon" json:"icon"`
}

type Reward struct {
	ID          string `dynamodbav:"PK" json:"id"`
	Name        string `dynamodbav:"Name" json:"name"`
	Description string `dynamodbav:"Description" json:"description"`
	PointsCost  int    `dynamodbav:"PointsCost" json:"pointsCost"`
	ImageURL    string `dynamodbav:"ImageURL" json:"imageUrl"`
}

type RecognitionProgram struct {
	ID            string    `dynamodbav:"PK" json:"id"`
	Name          string    `dynamodbav:"Name" json:"name"`
	StartDate     time.Time `dynamodbav:"StartDate" json:"startDate"`
	EndDate       time.Time `dynamodbav:"EndDate" json:"endDate"`
	PointsPerUser int       `dynamodbav:"PointsPerUser" json:"pointsPerUser"`
}

type Recognition struct {
	ProgramID  string    `dynamodbav:"PK" json:"programId"`
	ID         string    `dynamodbav:"SK" json:"id"`
	SenderID   string    `dynamodbav:"SenderID" json:"senderId"`
	ReceiverID string    `dynamodbav:"ReceiverID" json:"receiverId"`
	Points     int       `dynamodbav:"Points" json:"points"`
	Message    string    `dynamodbav:"Message" json:"message"`
	Tags       []string  `dynamodbav:"Tags" json:"tags"`
	Private    bool      `dynamodbav:"Private" json:"private"`
	CreatedAt  time.Time `dynamodbav:"CreatedAt" json:"createdAt"`
}

type PointsBalance struct {
	ProfileID     string `dynamodbav:"PK" json:"profileId"`
	ProgramID     string `dynamodbav:"SK" json:"programId"`
	Distributable int    `dynamodbav:"Distributable" json:"distributablePoints"`
	Earned        int    `dynamodbav:"Earned" json:"earnedPoints"`
}
