package service

import "sync"

// Registry lazily builds service descriptors from a credential source and
// caches them until Refresh. It is the injected replacement for per-service
// global singletons: construct one at startup and pass it to consumers.
type Registry struct {
	mu  sync.Mutex
	src Source

	supabase    *Supabase
	postgres    *Postgres
	mongo       *Mongo
	openai      *OpenAI
	anthropic   *Anthropic
	google      *Google
	googleDrive *GoogleDrive
	aws         *AWS
}

// NewRegistry creates a registry over the given credential source.
func NewRegistry(src Source) *Registry {
	return &Registry{src: src}
}

// Refresh drops every cached descriptor so the next accessor call reloads
// from the credential source. Call after storing or rotating credentials.
func (r *Registry) Refresh() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.supabase = nil
	r.postgres = nil
	r.mongo = nil
	r.openai = nil
	r.anthropic = nil
	r.google = nil
	r.googleDrive = nil
	r.aws = nil
}

func (r *Registry) Supabase() (Supabase, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.supabase == nil {
		s, err := LoadSupabase(r.src)
		if err != nil {
			return Supabase{}, err
		}
		r.supabase = &s
	}
	return *r.supabase, nil
}

func (r *Registry) Postgres() (Postgres, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.postgres == nil {
		p, err := LoadPostgres(r.src)
		if err != nil {
			return Postgres{}, err
		}
		r.postgres = &p
	}
	return *r.postgres, nil
}

func (r *Registry) Mongo() (Mongo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.mongo == nil {
		m, err := LoadMongo(r.src)
		if err != nil {
			return Mongo{}, err
		}
		r.mongo = &m
	}
	return *r.mongo, nil
}

func (r *Registry) OpenAI() (OpenAI, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.openai == nil {
		o, err := LoadOpenAI(r.src)
		if err != nil {
			return OpenAI{}, err
		}
		r.openai = &o
	}
	return *r.openai, nil
}

func (r *Registry) Anthropic() (Anthropic, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.anthropic == nil {
		a, err := LoadAnthropic(r.src)
		if err != nil {
			return Anthropic{}, err
		}
		r.anthropic = &a
	}
	return *r.anthropic, nil
}

func (r *Registry) Google() (Google, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.google == nil {
		g, err := LoadGoogle(r.src)
		if err != nil {
			return Google{}, err
		}
		r.google = &g
	}
	return *r.google, nil
}

func (r *Registry) GoogleDrive() (GoogleDrive, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.googleDrive == nil {
		g, err := LoadGoogleDrive(r.src)
		if err != nil {
			return GoogleDrive{}, err
		}
		r.googleDrive = &g
	}
	return *r.googleDrive, nil
}

func (r *Registry) AWS() (AWS, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.aws == nil {
		a, err := LoadAWS(r.src)
		if err != nil {
			return AWS{}, err
		}
		r.aws = &a
	}
	return *r.aws, nil
}
