package enrich

import (
	"context"
	"errors"
	"testing"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func imageRequest(url string) any {
	return mock.MatchedBy(func(req openai.ChatCompletionRequest) bool {
		if len(req.Messages) != 1 || len(req.Messages[0].MultiContent) != 2 {
			return false
		}
		img, text := req.Messages[0].MultiContent[0], req.Messages[0].MultiContent[1]
		return img.Type == openai.ChatMessagePartTypeImageURL && img.ImageURL != nil && img.ImageURL.URL == url &&
			text.Type == openai.ChatMessagePartTypeText && text.Text == classificationPrompt
	})
}

func TestParseImageType(t *testing.T) {
	tests := map[string]ImageType{
		"product":     ImageProduct,
		"PRODUCT":     ImageProduct,
		" product.\n": ImageProduct,
		"project":     ImageProject,
		"Project":     ImageProject,
		"not sure":    ImageProject,
		"":            ImageProject,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseImageType(in), in)
	}
}

func TestClassifierSplit(t *testing.T) {
	chat := &mockChat{}
	chat.On("CreateChatCompletion", mock.Anything, imageRequest("https://example.com/kelly-studio.jpg")).Return(answer("product"), nil).Once()
	chat.On("CreateChatCompletion", mock.Anything, imageRequest("https://example.com/kelly-restaurant.jpg")).Return(answer("Project"), nil).Once()
	chat.On("CreateChatCompletion", mock.Anything, imageRequest("https://example.com/kelly-detail.jpg")).Return(answer("product"), nil).Once()

	c := NewClassifier(newCompleter(chat), nil)
	product, project := c.Split(context.Background(), []string{
		"https://example.com/kelly-studio.jpg",
		"https://example.com/kelly-restaurant.jpg",
		"https://example.com/kelly-detail.jpg",
	})

	assert.Equal(t, []string{"https://example.com/kelly-studio.jpg", "https://example.com/kelly-detail.jpg"}, product)
	assert.Equal(t, []string{"https://example.com/kelly-restaurant.jpg"}, project)
	chat.AssertExpectations(t)
}

func TestClassifierCachesByURL(t *testing.T) {
	chat := &mockChat{}
	chat.On("CreateChatCompletion", mock.Anything, imageRequest("https://example.com/a.jpg")).Return(answer("product"), nil).Once()

	c := NewClassifier(newCompleter(chat), nil)
	for range 3 {
		assert.Equal(t, ImageProduct, c.Classify(context.Background(), "https://example.com/a.jpg"))
	}
	chat.AssertNumberOfCalls(t, "CreateChatCompletion", 1)

	_, ok, _ := c.Completer.Cache.Get(context.Background(), CacheKey("image_type", "https://example.com/a.jpg"))
	assert.True(t, ok)
}

func TestClassifierFailureIsProject(t *testing.T) {
	chat := &mockChat{}
	chat.On("CreateChatCompletion", mock.Anything, mock.Anything).Return(openai.ChatCompletionResponse{}, errors.New("vision unavailable"))

	c := NewClassifier(newCompleter(chat), nil)
	assert.Equal(t, ImageProject, c.Classify(context.Background(), "https://example.com/b.jpg"))
}
