package android

import (
	"reflect"
	"testing"
	"time"
)

func TestEscapeInputText(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"hello", "hello"},
		{"hello world", "hello%sworld"},
		{"a&b", `a\&b`},
		{`50%`, `50\%`},
		{"what?", `what\?`},
		{`path/to`, `path\/to`},
		{"", ""},
	}
	for _, tt := range tests {
		if got := EscapeInputText(tt.in); got != tt.want {
			t.Errorf("EscapeInputText(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseSinceRelative(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		in   string
		want string
	}{
		{"30s", "2024-06-01 11:59:30.000"},
		{"5m", "2024-06-01 11:55:00.000"},
		{"2h", "2024-06-01 10:00:00.000"},
		{"1d", "2024-05-31 12:00:00.000"},
	}
	for _, tt := range tests {
		got, err := ParseSince(tt.in, now)
		if err != nil {
			t.Fatalf("ParseSince(%q): %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseSince(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseSinceAbsolute(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	got, err := ParseSince("2024-05-30T08:15:00", now)
	if err != nil {
		t.Fatal(err)
	}
	if got != "2024-05-30 08:15:00.000" {
		t.Errorf("ParseSince = %q", got)
	}
}

func TestParseSinceEmpty(t *testing.T) {
	got, err := ParseSince("", time.Now())
	if err != nil || got != "" {
		t.Errorf("ParseSince(\"\") = %q, %v", got, err)
	}
}

func TestParseSinceInvalid(t *testing.T) {
	for _, in := range []string{"soon", "5x", "-5m"} {
		if _, err := ParseSince(in, time.Now()); err == nil {
			t.Errorf("ParseSince(%q) should fail", in)
		}
	}
}

const dumpsysPackage = `Packages:
  Package [com.example.app] (63a1b2c):
    userId=10123
    pkg=Package{abc com.example.app}
    codePath=/data/app/com.example.app-1
    versionCode=42 minSdk=26 targetSdk=34
    versionName=1.2.3
    runtime permissions:
      android.permission.CAMERA: granted=true
      android.permission.RECORD_AUDIO: granted=false
      android.permission.POST_NOTIFICATIONS: granted=true
  Activity Resolver Table:
    android.intent.action.MAIN:
      abc com.example.app/.MainActivity filter 123
        Action: "android.intent.action.MAIN"
        Category: "android.intent.category.LAUNCHER"
        android.intent.action.MAIN LAUNCHER cmp=com.example.app/.MainActivity
`

func TestParseAppInfo(t *testing.T) {
	info := ParseAppInfo("com.example.app", dumpsysPackage, "package:/data/app/com.example.app-1/base.apk\n")

	if info.VersionName != "1.2.3" {
		t.Errorf("VersionName = %q", info.VersionName)
	}
	if info.VersionCode != "42" {
		t.Errorf("VersionCode = %q", info.VersionCode)
	}
	if info.UID != "10123" {
		t.Errorf("UID = %q", info.UID)
	}
	if info.Path != "/data/app/com.example.app-1/base.apk" {
		t.Errorf("Path = %q", info.Path)
	}
	if info.MainActivity != "com.example.app/.MainActivity" {
		t.Errorf("MainActivity = %q", info.MainActivity)
	}
	wantPerms := []string{"android.permission.CAMERA", "android.permission.POST_NOTIFICATIONS"}
	if !reflect.DeepEqual(info.GrantedPermissions, wantPerms) {
		t.Errorf("GrantedPermissions = %v, want %v", info.GrantedPermissions, wantPerms)
	}
}

func TestParseAppInfoEmptyDumpsys(t *testing.T) {
	info := ParseAppInfo("com.example.app", "", "")
	if info.Package != "com.example.app" {
		t.Errorf("Package = %q", info.Package)
	}
	if len(info.GrantedPermissions) != 0 {
		t.Errorf("GrantedPermissions = %v, want empty", info.GrantedPermissions)
	}
}

func TestResolveComponent(t *testing.T) {
	tests := []struct {
		pkg, activity, want string
	}{
		{"com.example", "", "com.example"},
		{"com.example", ".MainActivity", "com.example/.MainActivity"},
		{"com.example", "MainActivity", "com.example/MainActivity"},
		{"com.example", "com.other/.Act", "com.other/.Act"},
	}
	for _, tt := range tests {
		if got := ResolveComponent(tt.pkg, tt.activity); got != tt.want {
			t.Errorf("ResolveComponent(%q, %q) = %q, want %q", tt.pkg, tt.activity, got, tt.want)
		}
	}
}

func TestParseBattery(t *testing.T) {
	out := `Current Battery Service state:
  AC powered: false
  level: 87
  scale: 100
  status: 2
`
	b, ok := ParseBattery(out)
	if !ok {
		t.Fatal("ParseBattery reported no data")
	}
	if b.Level != "87" || b.Status != "2" {
		t.Errorf("battery = %+v", b)
	}
	if b.String() != "87% (status=2)" {
		t.Errorf("String() = %q", b.String())
	}

	if _, ok := ParseBattery("garbage"); ok {
		t.Error("ParseBattery should report no data for garbage")
	}
}

func TestCollapseSpaces(t *testing.T) {
	in := "Filesystem      Size  Used\n/dev/block/dm-5  108G   23G\n"
	want := "Filesystem Size Used /dev/block/dm-5 108G 23G"
	if got := CollapseSpaces(in); got != want {
		t.Errorf("CollapseSpaces = %q", got)
	}
}

func TestFirstLine(t *testing.T) {
	if got := FirstLine("\n\n  total pss\nrest"); got != "total pss" {
		t.Errorf("FirstLine = %q", got)
	}
	if got := FirstLine(""); got != "" {
		t.Errorf("FirstLine(empty) = %q", got)
	}
}
