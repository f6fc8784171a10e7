package repo

import "github.com/odvcencio/art/internal/apperr"

// GetConfig reads one key from the opaque configuration map on Head
// (spec §3 "configuration"). Missing keys return "", false.
func (r *Repo) GetConfig(key string) (string, bool, error) {
	head, err := r.ReadHead()
	if err != nil {
		return "", false, err
	}
	v, ok := head.Configuration[key]
	return v, ok, nil
}

// SetConfig writes one key into the configuration map, creating it if
// absent, and persists the head file.
func (r *Repo) SetConfig(key, value string) error {
	head, err := r.ReadHead()
	if err != nil {
		return err
	}
	if head.Configuration == nil {
		head.Configuration = map[string]string{}
	}
	head.Configuration[key] = value
	return r.WriteHead(head)
}

// UnsetConfig removes key from the configuration map.
func (r *Repo) UnsetConfig(key string) error {
	head, err := r.ReadHead()
	if err != nil {
		return err
	}
	if _, ok := head.Configuration[key]; !ok {
		return apperr.Newf(apperr.NotFound, "config", "configuration key %q not set", key)
	}
	delete(head.Configuration, key)
	return r.WriteHead(head)
}

// ListConfig returns the full configuration map.
func (r *Repo) ListConfig() (map[string]string, error) {
	head, err := r.ReadHead()
	if err != nil {
		return nil, err
	}
	return head.Configuration, nil
}

// SetRemote records the remote handle/URL under Head.Remote (spec §9 open
// question (c) leaves the remote handle format unresolved; this core never
// interprets it, only stores and returns it for the remote collaborator).
func (r *Repo) SetRemote(remote string) error {
	head, err := r.ReadHead()
	if err != nil {
		return err
	}
	head.Remote = remote
	return r.WriteHead(head)
}

// GetRemote returns the configured remote handle, or "" if unconfigured.
func (r *Repo) GetRemote() (string, error) {
	head, err := r.ReadHead()
	if err != nil {
		return "", err
	}
	return head.Remote, nil
}

// RequireRemote returns the configured remote or a RemoteUnconfigured error.
func (r *Repo) RequireRemote() (string, error) {
	remote, err := r.GetRemote()
	if err != nil {
		return "", err
	}
	if remote == "" {
		return "", apperr.Newf(apperr.RemoteUnconfigured, "remote", "no remote configured")
	}
	return remote, nil
}
