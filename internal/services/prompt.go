package services

import (
	"fmt"
	"strings"
)

// maxPromptResumeChars bounds the resume excerpt sent to the model.
const maxPromptResumeChars = 12000

type PromptBuilder struct {
	chunker TextChunker
}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{chunker: NewTextChunker()}
}

// BuildAnalysisPrompt asks for a structured review of a resume against a job.
func (pb *PromptBuilder) BuildAnalysisPrompt(resumeText, jobTitle, jobDescription string, skills []string) string {
	excerpt := resumeText
	if chunks := pb.chunker.ChunkText(resumeText, maxPromptResumeChars, 0); len(chunks) > 0 {
		excerpt = chunks[0]
	}

	skillList := "none detected"
	if len(skills) > 0 {
		skillList = strings.Join(skills, ", ")
	}

	return fmt.Sprintf(`You are an experienced technical recruiter reviewing a resume for a %s position.

JOB DESCRIPTION:
%s

SKILLS DETECTED IN THE RESUME:
%s

RESUME:
%s

Review the resume against the job description. Return ONLY a JSON object in this format:
{
  "strengths": "<2-4 sentences on where the candidate fits the role>",
  "gaps": "<2-4 sentences on missing skills or experience>",
  "suggestions": "<concrete changes that would make the resume stronger for this role>",
  "summary": "<one sentence overall assessment>"
}`,
		jobTitle, jobDescription, skillList, excerpt)
}
