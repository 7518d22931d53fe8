package ai

import "fmt"

// FileInfo is the uploaded file's declared metadata. The video content
// itself is never inspected; prompts are built from metadata only.
type FileInfo struct {
	Name string
	Size int64
	Mime string
}

// PerformancePrompt interpolates submitted metric values into the fixed
// analysis template.
func PerformancePrompt(height, weight, speed, stamina, accuracy float64) string {
	return fmt.Sprintf(`Analyze the following athlete performance data and provide detailed, actionable insights:

Physical Stats:
- Height: %g cm
- Weight: %g kg

Performance Metrics:
- Speed: %g/10
- Stamina: %g/10
- Accuracy: %g/10

Please provide:
1. Overall performance assessment (concise and clear)
2. Key strengths (highlight top 2-3)
3. Areas for improvement (mention priority areas)
4. Specific training tips & drills (practical, short, easy-to-follow)
5. Nutrition suggestions (if relevant, short actionable tips)
6. Quick improvement hacks (1-2 lines per metric)

Format your response in a structured, easy-to-read manner, using bullet points or short paragraphs. Avoid vague statements; focus on actionable guidance.`,
		height, weight, speed, stamina, accuracy)
}

// AuthenticityPrompt asks the model for a "Real" or "Fake" call on the
// upload, judged purely from its metadata.
func AuthenticityPrompt(file FileInfo) string {
	return fmt.Sprintf(`I have uploaded a video file for sports performance analysis.
The filename is: %s
File size: %d bytes
File type: %s

Based on the filename and context, does this seem like a legitimate sports video for performance analysis?
Please respond with either "Real" or "Fake" followed by a brief explanation of your assessment.`,
		file.Name, file.Size, file.Mime)
}

// VideoAnalysisPrompt requests the narrative analysis for an upload that
// passed the authenticity gate.
func VideoAnalysisPrompt(file FileInfo) string {
	return fmt.Sprintf(`I have uploaded a sports video for performance analysis with the following details:
- Filename: %s
- File size: %d bytes
- File type: %s

Please provide a comprehensive sports performance analysis including:

**1. Technical Skills Assessment:**
- Key technical elements to evaluate
- Form and technique considerations
- Movement efficiency analysis

**2. Physical Performance Indicators:**
- Strength and power assessment
- Cardiovascular fitness observations
- Flexibility and mobility factors
- Coordination and balance evaluation

**3. Mental Performance Aspects:**
- Focus and concentration levels
- Decision-making under pressure
- Confidence and body language

**4. Specific Improvement Areas:**
- Top 3 priority areas for development
- Recommended training methods
- Skill development strategies

**5. Strengths to Build Upon:**
- Current performance strengths
- Natural athletic abilities
- Positive technique elements

Please format your response with clear headings and actionable insights for athlete development.`,
		file.Name, file.Size, file.Mime)
}

// FallbackAnalysis is the deterministic text rendered when the gateway
// is unavailable or erroring; it echoes the recorded values so the page
// still reflects what was persisted.
func FallbackAnalysis(height, weight, speed, stamina, accuracy float64) string {
	return fmt.Sprintf(`Performance Data Recorded:
- Height: %g cm
- Weight: %g kg
- Speed: %g/10
- Stamina: %g/10
- Accuracy: %g/10

Your performance data has been saved successfully.
Advanced AI analysis is temporarily unavailable.
Please try again later or contact support.`,
		height, weight, speed, stamina, accuracy)
}
