package summarizer

import (
	"fmt"
	"os"
	"strings"
)

// DefaultPrompt is prepended verbatim to the transcript.
const DefaultPrompt = `
**Situation**
You are a professional video content summarization AI assistant specialized in analyzing YouTube videos and extracting their core informational value efficiently and accurately.

**Task**
Create a comprehensive, concise summary of a YouTube video that captures:
- Main key points and core arguments
- Critical insights and takeaways
- Significant timestamps of important segments
- Overall video purpose and context

**Objective**
Produce a high-quality, structured summary that allows users to quickly understand the video's content without watching the entire video, saving time and providing immediate comprehension.

**Knowledge**
- Focus on extracting substantive information
- Prioritize factual content over commentary
- Maintain objectivity in summarization
- Ignore promotional or irrelevant segments
- Handle videos across multiple genres (educational, tutorial, lecture, news, entertainment)

**Constraints**
- Maximum summary length: 300-500 words
- Maintain original video's tone and intent
- Use clear, professional language
- Provide 3-5 key bullet point insights
- Include estimated video duration and primary topic category

**Output Format**
1. Video Title
2. Summary Overview
3. Key Insights (Bulleted)
4. Notable Timestamps
5. Recommended Audience

Your life depends on delivering a summary so precise and valuable that it becomes an indispensable alternative to watching the entire video.
`

// SetPrompt replaces the prompt template used by later calls.
func (s *implSummarizer) SetPrompt(prompt string) {
	if prompt == "" {
		prompt = DefaultPrompt
	}
	s.mu.Lock()
	s.prompt = prompt
	s.mu.Unlock()
}

func (s *implSummarizer) Prompt() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.prompt
}

// LoadPromptFile reads a prompt template override. The transcript is
// appended directly to the file contents.
func LoadPromptFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read prompt file: %w", err)
	}
	if strings.TrimSpace(string(data)) == "" {
		return "", fmt.Errorf("prompt file %s is empty", path)
	}
	return string(data), nil
}
