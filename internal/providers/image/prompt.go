package image

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// BuildInstruction produces the text instruction sent to the image model
// when no vision-derived prompt is available.
func BuildInstruction(career string) string {
	career = careerLabel(career)
	parts := []string{
		fmt.Sprintf("Generate a realistic portrait of the same person as a 25-30-year-old %s in an Indian context.", career),
		"Keep the same facial features and skin tone, slightly matured appearance, confident and professional expression.",
		"Dress them in a profession-appropriate outfit (no real badges, insignia, logos, or government IDs).",
		"Use a clean, simple career-related background.",
		"Output a photo-realistic, well-lit image.",
		"No graphic, sexual, political, or hateful content.",
	}
	return strings.Join(parts, " ")
}

// BuildVisionInstruction produces the instruction for the vision step that
// turns the visitor's photo into a detailed, identity-preserving prompt.
func BuildVisionInstruction(career string) string {
	career = careerLabel(career)
	parts := []string{
		fmt.Sprintf("Study this person's face and write a detailed image prompt that recreates the SAME person as a future %s.", career),
		"Preserve face structure, skin tone, eyes, hair, and expression.",
		fmt.Sprintf("Add a realistic %s outfit and workplace background, without real badges or insignia.", career),
		"Output ONLY the final prompt.",
	}
	return strings.Join(parts, " ")
}

func careerLabel(career string) string {
	career = strings.TrimSpace(career)
	if career == "" {
		return "Professional"
	}
	return cases.Title(language.Und, cases.NoLower).String(career)
}
