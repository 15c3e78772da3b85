package group

// CreateGroupRequest represents the request to create a new group.
type CreateGroupRequest struct {
	Name string `json:"name"`
}

// JoinGroupRequest represents the request to join a group by its code.
type JoinGroupRequest struct {
	Code string `json:"code"`
}

// GroupResponse represents the response for a group.
type GroupResponse struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Code      string   `json:"code"`
	Members   []string `json:"members"`
	CreatedAt string   `json:"created_at"`
}

// ToResponse converts a Group model to a GroupResponse DTO.
func (g *Group) ToResponse() *GroupResponse {
	return &GroupResponse{
		ID:        g.ID,
		Name:      g.Name,
		Code:      g.Code,
		Members:   g.Members,
		CreatedAt: g.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
