package agent

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

const (
	TypeBasic           = "basic"
	TypeCreative        = "creative"
	TypeTechnical       = "technical"
	TypeCustomerSupport = "customer_support"
)

// Profile describes one agent specialization.
type Profile struct {
	Name         string `yaml:"name"`
	Instructions string `yaml:"instructions"`
}

// Catalog maps agent types to their profiles. Unknown types resolve to
// the creative profile rather than failing; callers can detect the
// substitution from Resolve's second return value.
type Catalog struct {
	profiles map[string]Profile
}

func DefaultCatalog() *Catalog {
	return &Catalog{profiles: map[string]Profile{
		TypeBasic: {
			Name: "AI Chatbot Assistant",
			Instructions: `You are a helpful, friendly, and knowledgeable AI assistant.
You can help users with a wide range of tasks including:
- Answering questions on various topics
- Providing explanations and tutorials
- Helping with problem-solving
- Engaging in casual conversation
- Offering creative assistance

Always be polite, accurate, and helpful in your responses.`,
		},
		TypeCreative: {
			Name: "AI Creative Assistant Specialist",
			Instructions: `You are a creative AI assistant specializing in:
- Creative writing and storytelling
- Brainstorming and ideation
- Art and design concepts
- Marketing and content creation
- Problem-solving with creative approaches

Be imaginative, inspiring, and help users think outside the box.`,
		},
		TypeTechnical: {
			Name: "AI Technical Expert Specialist",
			Instructions: `You are a technical AI assistant specializing in:
- Programming and software development
- Technical troubleshooting
- Code reviews and optimization
- System architecture and design
- Technology explanations and tutorials

Be precise, detailed, and provide practical solutions.`,
		},
		TypeCustomerSupport: {
			Name: "AI Customer Support Specialist",
			Instructions: `You are a customer support AI assistant specializing in:
- Helping users with product questions
- Troubleshooting common issues
- Providing clear, step-by-step guidance
- Escalating complex issues appropriately
- Maintaining a helpful and empathetic tone

Always be patient, understanding, and solution-focused.`,
		},
	}}
}

// LoadCatalog returns the built-in catalog, overlaid with profiles from
// the given YAML file when a path is set. File entries win over built-ins
// field by field, so an operator can re-word instructions without
// restating display names.
func LoadCatalog(path string) (*Catalog, error) {
	catalog := DefaultCatalog()
	if path == "" {
		return catalog, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read agent catalog: %w", err)
	}

	var overrides map[string]Profile
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return nil, fmt.Errorf("parse agent catalog: %w", err)
	}

	for agentType, override := range overrides {
		profile := catalog.profiles[agentType]
		if override.Name != "" {
			profile.Name = override.Name
		}
		if override.Instructions != "" {
			profile.Instructions = override.Instructions
		}
		catalog.profiles[agentType] = profile
	}
	return catalog, nil
}

// Resolve maps an agent type to its profile. Unknown types fall back to
// creative; the second return reports the type actually used.
func (c *Catalog) Resolve(agentType string) (Profile, string) {
	if p, ok := c.profiles[agentType]; ok {
		return p, agentType
	}
	return c.profiles[TypeCreative], TypeCreative
}

// Types lists the available agent types, built-ins first.
func (c *Catalog) Types() []string {
	builtin := []string{TypeBasic, TypeCreative, TypeTechnical, TypeCustomerSupport}
	types := make([]string, 0, len(c.profiles))
	seen := make(map[string]bool, len(c.profiles))
	for _, t := range builtin {
		if _, ok := c.profiles[t]; ok {
			types = append(types, t)
			seen[t] = true
		}
	}
	extras := make([]string, 0)
	for t := range c.profiles {
		if !seen[t] {
			extras = append(extras, t)
		}
	}
	sort.Strings(extras)
	return append(types, extras...)
}
