package domain

import (
	"fmt"
	"net/url"
	"sort"
	"strings"
)

// Launch descriptors are URIs of the form
//
//	launch://<package>/<activity>?flag=value&sourceBounds=x1,y1,x2,y2
//
// The sourceBounds field records where the launch originated on screen and
// changes between sessions, so it must never participate in identity.
const volatileField = "sourceBounds"

// CleanDescriptor strips volatile fields from a launch descriptor and
// canonicalizes its query ordering so that two descriptors differing only in
// volatile state compare equal. Descriptors that cannot be parsed are
// returned verbatim.
func CleanDescriptor(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	q := u.Query()
	q.Del(volatileField)
	u.RawQuery = q.Encode() // Encode sorts keys
	return u.String()
}

// ComponentName extracts the flattened component ("package/Activity") a
// descriptor launches. It fails when the descriptor is unparseable or names
// no explicit component.
func ComponentName(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnparseableDescriptor, err)
	}
	name := strings.TrimPrefix(u.Path, "/")
	if u.Host == "" || name == "" {
		return "", fmt.Errorf("%w: no component in %q", ErrUnparseableDescriptor, raw)
	}
	return u.Host + "/" + name, nil
}

// PackageName returns the package a descriptor resolves to.
func PackageName(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnparseableDescriptor, err)
	}
	if u.Host == "" {
		return "", fmt.Errorf("%w: no package in %q", ErrUnparseableDescriptor, raw)
	}
	return u.Host, nil
}

// ProviderPackage returns the package part of a flattened widget provider
// component such as "com.example.widgets/ClockWidget".
func ProviderPackage(provider string) (string, error) {
	pkg, _, ok := strings.Cut(provider, "/")
	if !ok || pkg == "" {
		return "", fmt.Errorf("%w: malformed provider %q", ErrUnparseableDescriptor, provider)
	}
	return pkg, nil
}

// IdentityKey computes the structural fingerprint used to match the same item
// across two layouts. Storage ids never participate: two copies of the same
// shortcut produce the same key.
func (it *Item) IdentityKey() string {
	switch it.Kind {
	case KindFolder:
		return it.folderKey()
	case KindWidget:
		return it.Provider
	default:
		cleaned := CleanDescriptor(it.Intent)
		if comp, err := ComponentName(cleaned); err == nil {
			return comp
		}
		return cleaned
	}
}

// folderKey is identical for two folders holding the same multiset of
// children, independent of child order or storage ids.
func (it *Item) folderKey() string {
	parts := make([]string, 0, len(it.Children))
	for desc, ids := range it.Children {
		parts = append(parts, fmt.Sprintf("%d%s", len(ids), CleanDescriptor(desc)))
	}
	sort.Strings(parts)
	return strings.Join(parts, ",")
}
