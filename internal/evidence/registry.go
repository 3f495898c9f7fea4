// Package evidence matches health claims against a static registry of
// authoritative sources and computes confidence and validation verdicts.
package evidence

import "github.com/prebunk/prebunk/internal/model"

// Registry is the immutable set of trusted sources. It is constructed
// once at process start and injected; nothing mutates it afterwards.
type Registry struct {
	sources []model.Source
}

// NewRegistry creates a registry over the given sources
func NewRegistry(sources []model.Source) *Registry {
	return &Registry{sources: sources}
}

// Sources returns the registered sources in registry order
func (r *Registry) Sources() []model.Source {
	return r.sources
}

// ByName returns a source by exact name
func (r *Registry) ByName(name string) (model.Source, bool) {
	for _, s := range r.sources {
		if s.Name == name {
			return s, true
		}
	}
	return model.Source{}, false
}

// DefaultSources returns the built-in trusted health information sources.
// Authority scores are static configuration.
func DefaultSources() []model.Source {
	return []model.Source{
		{
			Name:       "World Health Organization (WHO)",
			URLPattern: "who.int",
			Authority:  0.95,
			Specialties: []string{
				"global health", "disease outbreaks", "vaccination guidelines",
				"infectious diseases", "health emergencies", "public health policy",
			},
			Type:         model.SourceGovernment,
			Description:  "Global health authority providing evidence-based guidance",
			ContentTypes: []string{"guidelines", "fact sheets", "recommendations", "reports"},
			Limitations:  []string{"May not cover country-specific recommendations", "Focus on global rather than individual guidance"},
		},
		{
			Name:       "Centers for Disease Control and Prevention (CDC)",
			URLPattern: "cdc.gov",
			Authority:  0.95,
			Specialties: []string{
				"US health policy", "disease surveillance", "prevention",
				"vaccination schedules", "infectious diseases", "epidemiology",
			},
			Type:         model.SourceGovernment,
			Description:  "US national public health agency",
			ContentTypes: []string{"guidelines", "surveillance data", "recommendations", "fact sheets"},
			Limitations:  []string{"US-focused", "May not apply to other countries"},
		},
		{
			Name:       "Cochrane Library",
			URLPattern: "cochranelibrary.com",
			Authority:  0.90,
			Specialties: []string{
				"systematic reviews", "evidence synthesis", "meta-analyses",
				"clinical effectiveness", "treatment comparisons",
			},
			Type:         model.SourceResearch,
			Description:  "High-quality systematic reviews and meta-analyses",
			ContentTypes: []string{"systematic reviews", "meta-analyses", "clinical trials"},
			Limitations:  []string{"May not have reviews for very new treatments", "Academic language"},
		},
		{
			Name:       "U.S. Food and Drug Administration (FDA)",
			URLPattern: "fda.gov",
			Authority:  0.90,
			Specialties: []string{
				"drug approval", "medical devices", "safety warnings",
				"adverse events", "clinical trials", "regulatory decisions",
			},
			Type:         model.SourceGovernment,
			Description:  "US agency regulating medical products",
			ContentTypes: []string{"safety alerts", "drug labels", "approval decisions", "warnings"},
			Limitations:  []string{"US regulatory focus", "May not cover off-label uses"},
		},
		{
			Name:       "PubMed/NCBI",
			URLPattern: "pubmed.ncbi.nlm.nih.gov",
			Authority:  0.85,
			Specialties: []string{
				"peer-reviewed research", "clinical studies", "basic science",
				"medical literature", "case studies", "clinical trials",
			},
			Type:         model.SourceAcademic,
			Description:  "Database of peer-reviewed medical literature",
			ContentTypes: []string{"research papers", "clinical trials", "case studies", "reviews"},
			Limitations:  []string{"Variable quality", "Requires medical expertise to interpret", "May include preliminary studies"},
		},
		{
			Name:       "American Academy of Pediatrics (AAP)",
			URLPattern: "aap.org",
			Authority:  0.85,
			Specialties: []string{
				"pediatric care", "child health", "vaccination schedules",
				"infant care", "adolescent health", "pediatric guidelines",
			},
			Type:         model.SourceProfessional,
			Description:  "Professional society for pediatricians",
			ContentTypes: []string{"clinical guidelines", "policy statements", "recommendations"},
			Limitations:  []string{"Pediatric focus only", "Professional audience"},
		},
		{
			Name:       "Mayo Clinic",
			URLPattern: "mayoclinic.org",
			Authority:  0.80,
			Specialties: []string{
				"patient education", "symptoms", "diseases", "treatments",
				"patient care", "health information", "medical conditions",
			},
			Type:         model.SourceMedical,
			Description:  "Trusted medical institution providing patient information",
			ContentTypes: []string{"patient guides", "symptom information", "treatment options"},
			Limitations:  []string{"Focused on patient education", "May not include latest research"},
		},
		{
			Name:       "American Medical Association (AMA)",
			URLPattern: "ama-assn.org",
			Authority:  0.80,
			Specialties: []string{
				"medical ethics", "professional standards", "health policy",
				"physician guidelines", "medical education",
			},
			Type:         model.SourceProfessional,
			Description:  "Professional association for physicians",
			ContentTypes: []string{"policy statements", "ethical guidelines", "professional standards"},
			Limitations:  []string{"Focus on professional practice", "Policy rather than clinical guidance"},
		},
	}
}
