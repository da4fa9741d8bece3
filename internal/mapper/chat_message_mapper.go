package mapper

import (
	"mindmate-be/internal/entity"
	"mindmate-be/internal/model"
)

type ChatMessageMapper struct{}

func NewChatMessageMapper() *ChatMessageMapper {
	return &ChatMessageMapper{}
}

func (m *ChatMessageMapper) ToEntity(c *model.ChatMessage) *entity.ChatMessage {
	if c == nil {
		return nil
	}
	return &entity.ChatMessage{
		Id:           c.Id,
		UserId:       c.UserId,
		Role:         c.Role,
		Content:      c.Content,
		SevereCrisis: c.SevereCrisis,
		CreatedAt:    c.CreatedAt,
	}
}

func (m *ChatMessageMapper) ToModel(c *entity.ChatMessage) *model.ChatMessage {
	if c == nil {
		return nil
	}
	return &model.ChatMessage{
		Id:           c.Id,
		UserId:       c.UserId,
		Role:         c.Role,
		Content:      c.Content,
		SevereCrisis: c.SevereCrisis,
		CreatedAt:    c.CreatedAt,
	}
}
