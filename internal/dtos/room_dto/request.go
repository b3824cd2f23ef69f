package room_dto

type CreateRoomRequest struct {
	SharedText string `json:"shared_text" validate:"max=65536"`
}

type ListMessagesRequest struct {
	BeforeID string `json:"before_id" validate:"omitempty,len=24,hexadecimal"`
	Limit    int64  `json:"limit" validate:"omitempty,min=1,max=200"`
}
