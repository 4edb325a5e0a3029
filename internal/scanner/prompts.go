package scanner

const extractSystemPrompt = "You are an expert at reading business cards."

const extractPromptTemplate = `
You are extracting information from a visiting card OCR text.

Rules:
- Use reasoning to infer fields even if labels are missing.
- Names are usually short, capitalized, near top.
- Company names are often bold, larger, or repeated.
- Address may span multiple lines.
- If multiple guesses exist, choose the most likely one.
- If absolutely impossible, return "Not Found".

Return ONLY valid JSON with exactly these keys:
Name, Designation, Company, Address, Industry, Services

OCR TEXT:
%s
`

const followupPromptTemplate = `
You are a business analyst.
Answer using public knowledge and reasoning.
If exact data is unavailable, provide realistic estimates
and clearly state assumptions.

Context:
%s

Question:
%s
`

const followupContextTemplate = `
Company: %s
Industry: %s
Services: %s
`

// FollowupUnavailable is the answer given when the model cannot be reached.
const FollowupUnavailable = "Unable to fetch information right now."
