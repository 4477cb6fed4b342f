package repository

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/raida-labs/diag-raida-api/internal/models"
)

// questionBankSchema constrains external question bank files before they are
// decoded into models. Difficulty tiers and option shapes are validated here
// so malformed banks fail at startup rather than mid-request.
const questionBankSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["questions"],
  "properties": {
    "questions": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "required": ["id", "text", "topic", "difficulty", "options", "correct_answer", "explanation"],
        "properties": {
          "id": {"type": "string", "minLength": 1},
          "text": {"type": "string", "minLength": 1},
          "topic": {"type": "string", "minLength": 1},
          "difficulty": {"enum": ["easy", "medium", "hard"]},
          "options": {
            "type": "array",
            "minItems": 2,
            "items": {
              "type": "object",
              "required": ["text", "is_correct"],
              "properties": {
                "text": {"type": "string"},
                "is_correct": {"type": "boolean"},
                "explanation": {"type": "string"}
              }
            }
          },
          "correct_answer": {"type": "string", "minLength": 1},
          "explanation": {"type": "string"},
          "math_expression": {"type": "string"},
          "image_url": {"type": "string"}
        }
      }
    }
  }
}`

type questionBankFile struct {
	Questions []models.Question `json:"questions"`
}

// LoadQuestionBank reads and validates a JSON question bank file.
func LoadQuestionBank(path string) ([]models.Question, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read question bank: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("question_bank.schema.json", strings.NewReader(questionBankSchema)); err != nil {
		return nil, fmt.Errorf("load question bank schema: %w", err)
	}
	schema, err := compiler.Compile("question_bank.schema.json")
	if err != nil {
		return nil, fmt.Errorf("compile question bank schema: %w", err)
	}

	var document interface{}
	if err := json.Unmarshal(raw, &document); err != nil {
		return nil, fmt.Errorf("parse question bank: %w", err)
	}

	if err := schema.Validate(document); err != nil {
		return nil, fmt.Errorf("invalid question bank: %w", err)
	}

	var bank questionBankFile
	if err := json.Unmarshal(raw, &bank); err != nil {
		return nil, fmt.Errorf("decode question bank: %w", err)
	}

	seen := make(map[string]struct{}, len(bank.Questions))
	for _, q := range bank.Questions {
		if _, dup := seen[q.ID]; dup {
			return nil, fmt.Errorf("duplicate question id %q in bank", q.ID)
		}
		seen[q.ID] = struct{}{}
	}

	return bank.Questions, nil
}
