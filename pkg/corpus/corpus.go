// Package corpus holds the fixed fallback document list used when no remote
// search provider answer is available, plus the case-insensitive filter the
// resolver applies against it.
package corpus

import (
	"strings"

	"golang.org/x/text/cases"
)

// Document is a single search result. Immutable once created; sourced from
// the local corpus or a remote provider response.
type Document struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Description string `json:"description"`
}

// Filter returns the documents whose title or description contains query,
// compared case-insensitively with Unicode case folding. Corpus order is
// preserved.
func Filter(docs []Document, query string) []Document {
	query = strings.TrimSpace(query)
	if query == "" {
		return []Document{}
	}
	fold := cases.Fold()
	needle := fold.String(query)

	matched := make([]Document, 0)
	for _, doc := range docs {
		if strings.Contains(fold.String(doc.Title), needle) ||
			strings.Contains(fold.String(doc.Description), needle) {
			matched = append(matched, doc)
		}
	}
	return matched
}

// Titles returns up to n document titles in corpus order. These feed the
// suggestion candidate set.
func Titles(docs []Document, n int) []string {
	if n > len(docs) {
		n = len(docs)
	}
	titles := make([]string, 0, n)
	for _, doc := range docs[:n] {
		titles = append(titles, doc.Title)
	}
	return titles
}

// Default returns the demo corpus. The list is fixed: it is the offline
// answer set for every query the remote providers cannot serve.
func Default() []Document {
	return []Document{
		{
			Title:       "D1Ks Search Engine - Professional Web Search",
			URL:         "https://www.d1ks.com",
			Description: "Discover the power of D1Ks search engine with advanced features, intelligent suggestions, and professional results.",
		},
		{
			Title:       "Modern Web Development Best Practices",
			URL:         "https://developer.mozilla.org",
			Description: "Learn about modern web development, HTML5, CSS3, JavaScript, and responsive design techniques.",
		},
		{
			Title:       "Search Engine Optimization Guide",
			URL:         "https://developers.google.com/search",
			Description: "Master SEO techniques to improve your website visibility and ranking on search engines.",
		},
		{
			Title:       "JavaScript Animation Libraries",
			URL:         "https://github.com",
			Description: "Explore popular JavaScript libraries for creating smooth animations and interactive web experiences.",
		},
		{
			Title:       "CSS Grid and Flexbox Tutorial",
			URL:         "https://css-tricks.com",
			Description: "Complete guide to CSS Grid and Flexbox layouts for modern responsive web design.",
		},
		{
			Title:       "Web Accessibility Standards",
			URL:         "https://www.w3.org/WAI/",
			Description: "Understanding WCAG guidelines and implementing accessibility features in web applications.",
		},
		{
			Title:       "Progressive Web Apps Development",
			URL:         "https://web.dev",
			Description: "Build fast, reliable, and engaging Progressive Web Apps with modern web technologies.",
		},
		{
			Title:       "API Design Best Practices",
			URL:         "https://restfulapi.net",
			Description: "Learn how to design and implement RESTful APIs following industry best practices.",
		},
		{
			Title:       "React vs Vue vs Angular Comparison",
			URL:         "https://2023.stateofjs.com",
			Description: "Comprehensive comparison of popular JavaScript frameworks for frontend development.",
		},
		{
			Title:       "Web Performance Optimization",
			URL:         "https://web.dev/performance/",
			Description: "Techniques and tools for optimizing web application performance and user experience.",
		},
		{
			Title:       "TypeScript for JavaScript Developers",
			URL:         "https://www.typescriptlang.org",
			Description: "Learn TypeScript to add static typing and improve code quality in JavaScript projects.",
		},
		{
			Title:       "Node.js Backend Development",
			URL:         "https://nodejs.org",
			Description: "Build scalable server-side applications with Node.js and modern JavaScript frameworks.",
		},
		{
			Title:       "Database Design Principles",
			URL:         "https://www.mongodb.com",
			Description: "Understanding database design patterns, normalization, and modern database technologies.",
		},
		{
			Title:       "Cloud Computing Services Guide",
			URL:         "https://aws.amazon.com",
			Description: "Compare and choose the best cloud computing services for your applications and infrastructure.",
		},
		{
			Title:       "Machine Learning for Web Developers",
			URL:         "https://www.tensorflow.org",
			Description: "Introduction to machine learning concepts and implementation in web applications.",
		},
		{
			Title:       "Cybersecurity Best Practices",
			URL:         "https://owasp.org",
			Description: "Essential security practices for protecting web applications from common vulnerabilities.",
		},
		{
			Title:       "Mobile-First Responsive Design",
			URL:         "https://responsivedesign.is",
			Description: "Create websites that work seamlessly across all devices with mobile-first design approach.",
		},
		{
			Title:       "WebAssembly Performance Guide",
			URL:         "https://webassembly.org",
			Description: "Leverage WebAssembly for high-performance computing in web browsers.",
		},
		{
			Title:       "GraphQL vs REST API Comparison",
			URL:         "https://graphql.org",
			Description: "Understanding the differences and use cases for GraphQL and REST APIs.",
		},
		{
			Title:       "DevOps and CI/CD Pipelines",
			URL:         "https://about.gitlab.com",
			Description: "Implement continuous integration and deployment workflows for modern software development.",
		},
	}
}
