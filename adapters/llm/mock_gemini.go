package llm

import (
	"context"
	"fmt"

	"github.com/farolia/farol/domain/repositories"
)

// MockDescriber is a placeholder ScreenDescriber for local development
type MockDescriber struct{}

var _ repositories.ScreenDescriber = (*MockDescriber)(nil)

func NewMockDescriber() *MockDescriber {
	return &MockDescriber{}
}

// DescribeImage implements repositories.ScreenDescriber
func (m *MockDescriber) DescribeImage(ctx context.Context, image []byte, mimeType string) (string, error) {
	if len(image) == 0 {
		return "", fmt.Errorf("image cannot be empty")
	}
	return fmt.Sprintf("Captura de tela recebida (%d bytes, %s). Descrição automática indisponível neste ambiente.", len(image), mimeType), nil
}
