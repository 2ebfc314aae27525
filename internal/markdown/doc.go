// Package markdown reads article files from a flat content directory, splits
// front matter from the Markdown body and renders the body with goldmark.
package markdown
