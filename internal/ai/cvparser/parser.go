// Package cvparser extracts structured seafarer data from CV images
// using OpenAI vision models.
package cvparser

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared/constant"
)

const visionModel = "gpt-4o"

// CVParser handles CV parsing using OpenAI Vision
type CVParser struct {
	client *openai.Client
}

// NewCVParser creates a new CV parser
func NewCVParser(apiKey string) *CVParser {
	client := openai.NewClient(
		option.WithAPIKey(apiKey),
	)

	return &CVParser{
		client: &client,
	}
}

// CVData represents structured seafarer CV information
type CVData struct {
	Name         string            `json:"name"`
	Rank         string            `json:"rank"`
	Nationality  string            `json:"nationality,omitempty"`
	Email        string            `json:"email,omitempty"`
	Phone        string            `json:"phone,omitempty"`
	YearsAtSea   string            `json:"years_at_sea,omitempty"`
	VesselTypes  []string          `json:"vessel_types,omitempty"`
	SeaService   []SeaServiceEntry `json:"sea_service,omitempty"`
	Certificates []string          `json:"certificates,omitempty"`
	Languages    []string          `json:"languages,omitempty"`
	Summary      string            `json:"summary"`
}

// SeaServiceEntry is one contract in the sea service record
type SeaServiceEntry struct {
	Vessel     string `json:"vessel"`
	VesselType string `json:"vessel_type,omitempty"`
	Rank       string `json:"rank"`
	StartDate  string `json:"start_date"` // YYYY-MM format
	EndDate    string `json:"end_date"`   // YYYY-MM or "Present"
}

const extractionSystemPrompt = `You are a maritime crewing assistant. Extract ALL information from the seafarer CV image and return ONLY valid JSON.`

const extractionSchema = `{
  "name": string,
  "rank": string (current or most recent rank, e.g. "Master", "Chief Engineer", "Able Seaman"),
  "nationality": string (optional),
  "email": string (optional),
  "phone": string (optional),
  "years_at_sea": string (optional, e.g. "12 years"),
  "vessel_types": string[] (optional, e.g. ["Bulk Carrier", "Container"]),
  "sea_service": [{
    "vessel": string,
    "vessel_type": string (optional),
    "rank": string,
    "start_date": string (YYYY-MM format),
    "end_date": string (YYYY-MM or "Present")
  }],
  "certificates": string[] (optional, STCW and other certificates),
  "languages": string[] (optional),
  "summary": string (professional summary of the seafarer, max 200 words)
}`

// ParseCVFromImage parses a seafarer CV from image data (PDF page, JPG, PNG)
func (p *CVParser) ParseCVFromImage(ctx context.Context, imageData []byte) (*CVData, error) {
	dataURL := toDataURL(imageData)

	userPrompt := fmt.Sprintf(`Extract all information from this seafarer CV image in the following JSON structure:

%s

IMPORTANT:
- Extract ALL visible text accurately
- If a field is not available, omit it or use empty string
- Sea service in chronological order (newest first)
- Return ONLY the JSON, no explanatory text`, extractionSchema)

	messages := []openai.ChatCompletionMessageParamUnion{
		openai.SystemMessage(extractionSystemPrompt),
		{
			OfUser: &openai.ChatCompletionUserMessageParam{
				Content: openai.ChatCompletionUserMessageParamContentUnion{
					OfArrayOfContentParts: []openai.ChatCompletionContentPartUnionParam{
						{
							OfText: &openai.ChatCompletionContentPartTextParam{
								Type: constant.Text("text"),
								Text: userPrompt,
							},
						},
						{
							OfImageURL: &openai.ChatCompletionContentPartImageParam{
								Type: constant.ImageURL("image_url"),
								ImageURL: openai.ChatCompletionContentPartImageImageURLParam{
									URL:    dataURL,
									Detail: "high",
								},
							},
						},
					},
				},
			},
		},
	}

	return p.complete(ctx, messages)
}

// ParseCVFromPages parses a multi-page CV by sending all pages together
func (p *CVParser) ParseCVFromPages(ctx context.Context, pages [][]byte) (*CVData, error) {
	if len(pages) == 0 {
		return nil, errors.New("no pages provided")
	}

	if len(pages) == 1 {
		return p.ParseCVFromImage(ctx, pages[0])
	}

	userPrompt := fmt.Sprintf(`This is a multi-page seafarer CV. Extract all information from ALL pages in the following JSON structure:

%s

Combine information from all pages. Return ONLY JSON.`, extractionSchema)

	contentParts := []openai.ChatCompletionContentPartUnionParam{
		{
			OfText: &openai.ChatCompletionContentPartTextParam{
				Type: constant.Text("text"),
				Text: userPrompt,
			},
		},
	}

	for i, pageData := range pages {
		contentParts = append(contentParts, openai.ChatCompletionContentPartUnionParam{
			OfImageURL: &openai.ChatCompletionContentPartImageParam{
				Type: constant.ImageURL("image_url"),
				ImageURL: openai.ChatCompletionContentPartImageImageURLParam{
					URL:    toDataURL(pageData),
					Detail: "high",
				},
			},
		})

		if i < len(pages)-1 {
			contentParts = append(contentParts, openai.ChatCompletionContentPartUnionParam{
				OfText: &openai.ChatCompletionContentPartTextParam{
					Type: constant.Text("text"),
					Text: fmt.Sprintf("--- Page %d ends, Page %d begins ---", i+1, i+2),
				},
			})
		}
	}

	messages := []openai.ChatCompletionMessageParamUnion{
		openai.SystemMessage(extractionSystemPrompt),
		{
			OfUser: &openai.ChatCompletionUserMessageParam{
				Content: openai.ChatCompletionUserMessageParamContentUnion{
					OfArrayOfContentParts: contentParts,
				},
			},
		},
	}

	return p.complete(ctx, messages)
}

func (p *CVParser) complete(ctx context.Context, messages []openai.ChatCompletionMessageParamUnion) (*CVData, error) {
	completion, err := p.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: messages,
		Model:    visionModel,
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &openai.ResponseFormatJSONObjectParam{
				Type: constant.JSONObject("json_object"),
			},
		},
		Temperature: openai.Float(0.1),
		MaxTokens:   openai.Int(4000),
	})
	if err != nil {
		return nil, fmt.Errorf("openai vision api error: %w", err)
	}

	if len(completion.Choices) == 0 {
		return nil, errors.New("no response from openai")
	}

	content := completion.Choices[0].Message.Content
	var cvData CVData
	if err := json.Unmarshal([]byte(content), &cvData); err != nil {
		return nil, fmt.Errorf("failed to parse CV JSON: %w", err)
	}

	return &cvData, nil
}

func toDataURL(imageData []byte) string {
	return fmt.Sprintf("data:image/jpeg;base64,%s", base64.StdEncoding.EncodeToString(imageData))
}
