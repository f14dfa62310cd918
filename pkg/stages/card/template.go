package card

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/user/tapestudio/pkg/pipeline"
)

// TemplateVars contains variables for the card HTML template.
type TemplateVars struct {
	BodyWidth     int
	Title         string
	Subtitle      string
	Description   string
	Tag           string
	Price         string
	MaterialLabel string
	MaterialName  string
	MaterialColor template.CSS
	StageColor    template.CSS
	TextLabel     string
	CustomText    string
	Swatch        template.URL
}

// NewTemplateVars builds template variables from a card input.
func NewTemplateVars(input pipeline.CardInput, swatch template.URL) TemplateVars {
	vars := TemplateVars{
		BodyWidth:     input.Width,
		Title:         input.ProductType.DisplayName,
		Subtitle:      input.ProductType.ID,
		MaterialLabel: "Material",
		MaterialName:  input.Material.ID,
		MaterialColor: cssColor(input.Material.ColorHex, "#c49a6c"),
		StageColor:    cssColor(input.Background, "#000000"),
		TextLabel:     "Texto",
		CustomText:    input.CustomText,
		Swatch:        swatch,
	}
	if p := input.Product; p != nil {
		vars.Title = p.Name
		vars.Subtitle = input.ProductType.DisplayName
		vars.Description = p.Description
		vars.Tag = p.Tag
		vars.Price = p.Price()
	}
	return vars
}

// cssColor returns hex normalized for CSS, or fallback when it does not parse.
func cssColor(hex, fallback string) template.CSS {
	c, err := colorful.Hex(hex)
	if err != nil {
		return template.CSS(fallback)
	}
	return template.CSS(c.Hex())
}

var cardTemplate = template.Must(template.New("card").Parse(defaultHTMLTemplate))

// RenderHTML renders the card HTML template with the given variables.
func RenderHTML(vars TemplateVars) (string, error) {
	var buf bytes.Buffer
	if err := cardTemplate.Execute(&buf, vars); err != nil {
		return "", fmt.Errorf("execute template: %w", err)
	}
	return buf.String(), nil
}

// defaultHTMLTemplate is the product card HTML template.
const defaultHTMLTemplate = `<html>
  <head>
    <meta charset="utf-8">
    <style>
      * {
        margin: 0;
        padding: 0;
        box-sizing: border-box;
      }
      html, body {
        height: auto;
      }
      body {
        font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", sans-serif;
        width: {{.BodyWidth}}px;
        padding: 14px 16px;
        background-color: #ffffff;
        display: inline-flex;
        flex-direction: column;
        gap: 10px;
      }
      .header {
        display: flex;
        align-items: baseline;
        justify-content: space-between;
        gap: 8px;
      }
      .title {
        font-size: 17px;
        font-weight: 600;
        color: #222;
        white-space: nowrap;
        overflow: hidden;
        text-overflow: ellipsis;
      }
      .subtitle {
        font-size: 11px;
        color: #777;
      }
      .tag {
        font-size: 11px;
        font-weight: 600;
        color: #fff;
        background-color: #d9480f;
        border-radius: 3px;
        padding: 2px 6px;
      }
      .stage {
        display: flex;
        align-items: center;
        justify-content: center;
        height: 120px;
        border-radius: 6px;
        background-color: {{.StageColor}};
      }
      .stage img {
        max-height: 100px;
        border-radius: 4px;
      }
      .chip {
        width: 80px;
        height: 80px;
        border-radius: 50%;
        background-color: {{.MaterialColor}};
      }
      .description {
        font-size: 12px;
        color: #444;
      }
      .props {
        display: flex;
        align-items: center;
        justify-content: space-between;
        border-top: 1px solid #ddd;
        padding-top: 8px;
      }
      .prop-label {
        font-size: 11px;
        color: #666;
      }
      .prop-value {
        font-size: 13px;
        font-weight: 600;
        color: #333;
      }
      .price {
        font-size: 18px;
        font-weight: 700;
        color: #222;
      }
    </style>
  </head>
  <body>
    <div class="header">
      <div>
        <div class="title">{{.Title}}</div>
        <div class="subtitle">{{.Subtitle}}</div>
      </div>
      {{if .Tag}}<span class="tag">{{.Tag}}</span>{{end}}
    </div>
    <div class="stage">
      {{if .Swatch}}<img src="{{.Swatch}}" alt="">{{else}}<div class="chip"></div>{{end}}
    </div>
    {{if .Description}}<div class="description">{{.Description}}</div>{{end}}
    <div class="props">
      <div>
        <span class="prop-label">{{.MaterialLabel}}</span>
        <span class="prop-value">{{.MaterialName}}</span>
      </div>
      {{if .CustomText}}<div>
        <span class="prop-label">{{.TextLabel}}</span>
        <span class="prop-value">{{.CustomText}}</span>
      </div>{{end}}
      {{if .Price}}<div class="price">{{.Price}}</div>{{end}}
    </div>
  </body>
</html>`
