package android

import (
	"regexp"
	"strings"
)

// AppInfo summarizes one installed package, extracted from dumpsys output.
type AppInfo struct {
	Package            string   `json:"package"`
	VersionName        string   `json:"versionName"`
	VersionCode        string   `json:"versionCode"`
	UID                string   `json:"uid"`
	Path               string   `json:"path"`
	MainActivity       string   `json:"mainActivity"`
	GrantedPermissions []string `json:"grantedPermissions"`
}

var reComponent = regexp.MustCompile(`cmp=(\S+)`)

// ParseAppInfo extracts package details from `dumpsys package <pkg>` output.
// pmPath is the raw `pm path <pkg>` output, which may be empty.
func ParseAppInfo(pkg, dumpsys, pmPath string) AppInfo {
	info := AppInfo{
		Package:            pkg,
		GrantedPermissions: []string{},
	}

	if p := strings.TrimSpace(pmPath); p != "" {
		info.Path = strings.TrimPrefix(p, "package:")
	}

	for _, line := range strings.Split(dumpsys, "\n") {
		if idx := strings.Index(line, "versionName="); idx >= 0 {
			info.VersionName = strings.TrimSpace(line[idx+len("versionName="):])
		}
		if idx := strings.Index(line, "versionCode="); idx >= 0 {
			fields := strings.Fields(line[idx+len("versionCode="):])
			if len(fields) > 0 {
				info.VersionCode = fields[0]
			}
		}
		if idx := strings.Index(line, "userId="); idx >= 0 {
			fields := strings.Fields(line[idx+len("userId="):])
			if len(fields) > 0 {
				info.UID = fields[0]
			}
		}
		if strings.Contains(line, "granted=true") && strings.Contains(line, "android.permission") {
			fields := strings.Fields(strings.TrimSpace(line))
			if len(fields) > 0 {
				perm := strings.TrimSuffix(fields[0], ":")
				info.GrantedPermissions = append(info.GrantedPermissions, perm)
			}
		}
		if strings.Contains(line, "android.intent.action.MAIN") && strings.Contains(line, "LAUNCHER") {
			if m := reComponent.FindStringSubmatch(line); m != nil {
				info.MainActivity = m[1]
			}
		}
	}
	return info
}

// ResolveComponent builds the -n component for `am start` from a package and
// an activity that may be shorthand (".MainActivity") or fully qualified.
func ResolveComponent(pkg, activity string) string {
	if activity == "" {
		return pkg
	}
	if strings.HasPrefix(activity, ".") || !strings.Contains(activity, "/") {
		return pkg + "/" + activity
	}
	return activity
}
