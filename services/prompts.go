package services

import "fmt"

func ideasPrompt(topics string) string {
	return fmt.Sprintf(`You are a content strategist planning a blog calendar.
Suggest 5 distinct blog post ideas for these topics: %q.
Each idea needs a title, 3 to 5 short tags, a tone, and a one or two sentence summary.
Respond with a JSON array only, in this exact shape:
[{"title": "...", "tags": ["...", "..."], "tone": "...", "summary": "..."}]`, topics)
}

func postPrompt(title, tone string) string {
	if tone == "" {
		tone = "informative"
	}
	return fmt.Sprintf(`You are an experienced technical blogger.
Write a complete, well structured blog post about %q in a %s tone.
Use Markdown for the body: an introduction, sections with H2 and H3 headings, lists where they help,
fenced code blocks when the subject is technical, and a short conclusion.
Respond with one JSON object only, in this exact shape:
{"title": "...", "slug": "...", "content": "...", "tags": ["...", "..."]}
Escape every double quote and newline inside "content" so the object parses as JSON.`, title, tone)
}

func replyPrompt(comment, author string) string {
	if author == "" {
		author = "a reader"
	}
	return fmt.Sprintf(`You are the author of a blog replying to a comment from %s.
The comment reads: %q
Answer questions directly; thank people for feedback and add one relevant thought.
Keep it to two or three sentences.
Respond with one JSON object only: {"reply": "..."}`, author, comment)
}

func summaryPrompt(content string) string {
	return fmt.Sprintf(`You are an editor writing the preview text for a blog post.
Summarize the post below in at most 160 characters, leading with what the reader gains.
Post:
%q
Respond with one JSON object only: {"summary": "..."}`, content)
}
