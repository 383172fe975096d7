// Package prompt renders the instruction sent to the model.
package prompt

import "fmt"

const reviewSearchPrompt = `Task: You are an automated AI analyst. Your goal is to find real negative reviews on the internet about the company or topic given below. Work autonomously until you have collected the required number of reviews or are certain there are no more.

Search topic: %[1]s

Requirements:
1.  **Quantity**: Collect from 20 to 50 negative reviews. If you find fewer than 20, collect all there are. If you find none, return an empty list.
2.  **Authenticity**: Use ONLY real reviews from public websites (forums, review sites, blogs). Do NOT invent text, do not paraphrase or alter it. Keep the original spelling and punctuation.
3.  **Negativity criterion**: A review is negative when its author clearly expresses dissatisfaction, describes problems, financial losses, poor quality of service or deception. Ignore reviews with a neutral or positive tone.
4.  **Avoid advertising**: Do not take information from the company's own website, from promotional articles or from press releases.

Output format rules:
1.  **Format**: Return ONE response in JSON format. There must be no other text, explanations or greetings in the response.
2.  **JSON structure**:
    {
    "reviews": [
    {
    "name": "Author name or nickname",
    "review": "Full original review text",
    "city": "City (if given)",
    "date": "Review date (in its original format)"
    }
    ],
    "total_count": 0,
    "search_topic": "%[1]s"
    }
3.  **Empty fields**: If the author's name, city or date is missing on the site, leave the corresponding JSON field as an empty string "". The ` + "`review`" + ` field must always be filled in.
`

// Build returns the review search instruction for topic.
// The topic is inserted as is, without any escaping.
func Build(topic string) string {
	return fmt.Sprintf(reviewSearchPrompt, topic)
}
