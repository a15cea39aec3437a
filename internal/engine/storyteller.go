package engine

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/google/generative-ai-go/genai"
	"github.com/tatianab/petcare/internal/models"
	"google.golang.org/api/option"
)

//go:embed prompts/tell_story.txt
var tellStoryPrompt string

var tellStoryTmpl = template.Must(template.New("tell_story").Parse(tellStoryPrompt))

// Storyteller writes a story for the pet to tell in chat.
type Storyteller interface {
	TellStory(ctx context.Context, pet models.Pet, message string) (string, error)
}

// GeminiStoryteller asks Gemini for stories.
type GeminiStoryteller struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

func NewGeminiStoryteller(ctx context.Context, apiKey string) (*GeminiStoryteller, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}

	model := client.GenerativeModel("gemini-2.5-flash")
	return &GeminiStoryteller{
		client: client,
		model:  model,
	}, nil
}

func (g *GeminiStoryteller) Close() {
	g.client.Close()
}

type storyPromptData struct {
	Name    string
	Species string
	Sound   string
	Message string
	Skills  []string
}

func renderStoryPrompt(pet models.Pet, message string) (string, error) {
	info := pet.Species.Info()
	data := storyPromptData{
		Name:    pet.Name,
		Species: strings.ToLower(info.Name),
		Sound:   info.Sounds[0],
		Message: message,
	}
	for _, s := range models.AllSkills {
		if pet.Training.Has(s) {
			data.Skills = append(data.Skills, string(s))
		}
	}

	var buf bytes.Buffer
	if err := tellStoryTmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (g *GeminiStoryteller) TellStory(ctx context.Context, pet models.Pet, message string) (string, error) {
	prompt, err := renderStoryPrompt(pet, message)
	if err != nil {
		return "", err
	}

	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", err
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no content returned from Gemini")
	}

	text, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return "", fmt.Errorf("unexpected response type from Gemini")
	}
	return strings.TrimSpace(string(text)), nil
}
