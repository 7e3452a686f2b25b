package system

// rundll32 avoids cmd /c start, which would interpret & and ^ in URLs
func openCommand(target string) (string, []string) {
	return "rundll32", []string{"url.dll,FileProtocolHandler", target}
}
