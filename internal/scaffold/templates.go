package scaffold

// Starter file templates keyed by filename. These mirror the minimal layout
// the platform expects when a project is later deployed.

const readmeTemplate = `# {{.Name}}

Starter {{.Kind}} project generated by aibuilder.

## Getting started

    pip install -r requirements.txt
    python app.py

Deploy with:

    aibuilder deploy --model {{.Name}} --framework {{.Framework}}
`

const requirementsTemplate = `{{.Framework}}
numpy
requests
`

const configTemplate = `model_name: {{.Name}}
framework: {{.Framework}}
kind: {{.Kind}}
replicas: 1
resources:
  cpu: "1"
  memory: 512Mi
`

const chatbotAppTemplate = `"""Starter chatbot for {{.Name}}."""


def respond(message: str) -> str:
    return f"echo: {message}"


if __name__ == "__main__":
    while True:
        try:
            line = input("> ")
        except EOFError:
            break
        print(respond(line))
`

const classifierAppTemplate = `"""Starter classifier for {{.Name}}."""


def predict(features):
    return {"label": "unknown", "confidence": 0.0}


if __name__ == "__main__":
    print(predict([]))
`

const apiAppTemplate = `"""Starter inference API for {{.Name}}."""

from http.server import BaseHTTPRequestHandler, HTTPServer


class Handler(BaseHTTPRequestHandler):
    def do_POST(self):
        self.send_response(200)
        self.end_headers()
        self.wfile.write(b"{}")


if __name__ == "__main__":
    HTTPServer(("", 8080), Handler).serve_forever()
`

func templatesFor(kind string) map[string]string {
	files := map[string]string{
		"README.md":        readmeTemplate,
		"requirements.txt": requirementsTemplate,
		"model.yaml":       configTemplate,
	}
	switch kind {
	case "chatbot":
		files["app.py"] = chatbotAppTemplate
	case "classifier":
		files["app.py"] = classifierAppTemplate
	case "api":
		files["app.py"] = apiAppTemplate
	}
	return files
}
