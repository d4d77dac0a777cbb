package docpage

import "strings"

type sectionDoc struct {
	category     string
	title        string
	route        string
	responseType string
	intro        string
	request      string
	response     string
}

func (d sectionDoc) render(items string) string {
	var b strings.Builder
	b.WriteString(`            <div class="endpoint" id="` + d.category + `">` + "\n")
	b.WriteString(`                <h3>` + d.title + `</h3>` + "\n")
	b.WriteString(`                <p><span class="method post">POST</span> <code>` + d.route + `</code> <span class="response-type">` + d.responseType + `</span></p>` + "\n")
	b.WriteString(`                <p>` + d.intro + `</p>` + "\n")
	b.WriteString("                <ul>\n")
	b.WriteString(items + "\n")
	b.WriteString("                </ul>\n")
	b.WriteString("                <details>\n")
	b.WriteString("                    <summary>Request</summary>\n")
	b.WriteString("                    <pre><code>" + d.request + "</code></pre>\n")
	b.WriteString("                </details>\n")
	b.WriteString("                <details>\n")
	b.WriteString("                    <summary>Response</summary>\n")
	b.WriteString("                    " + d.response + "\n")
	b.WriteString("                </details>\n")
	b.WriteString("            </div>")
	return b.String()
}

var grammarDoc = sectionDoc{
	category:     "grammar",
	title:        "Grammar Check",
	route:        "/grammar/:tag",
	responseType: "application/json",
	intro:        "Check grammar for text. Available languages:",
	request: `{
    "text": "sami"
}`,
	response: `<pre><code>{
  "text": "sami",
  "errs": [
    {
      "error_text": "sami",
      "start_index": 0,
      "end_index": 4,
      "error_code": "typo",
      "description": "Ii leat sátnelisttus",
      "suggestions": [
        "sámi"
      ],
      "title": "Čállinmeattáhus"
    }
  ]
}</code></pre>`,
}

var spellerDoc = sectionDoc{
	category:     "speller",
	title:        "Spell Check",
	route:        "/speller/:tag",
	responseType: "application/json",
	intro:        "Check spelling for text. Available languages:",
	request: `{
    "text": "sami"
}`,
	response: `<pre><code>{
  "text": "sami",
  "results": [
    {
      "word": "sami",
      "is_correct": false,
      "suggestions": [
        {
          "value": "sámi",
          "weight": 14.529631
        },
        {
          "value": "sama",
          "weight": 40.2973
        },
        {
          "value": "sáme",
          "weight": 45.896103
        }
      ]
    }
  ]
}</code></pre>`,
}

var ttsDoc = sectionDoc{
	category:     "tts",
	title:        "Text-to-Speech",
	route:        "/tts/:tag/:voice",
	responseType: "audio/wav",
	intro:        "Convert text to speech. Available languages and voices:",
	request: `{
    "text": "Sample text to convert to speech"
}`,
	response: `<p>WAV audio file containing the synthesized speech.</p>`,
}
