package system

func openCommand(target string) (string, []string) {
	return "xdg-open", []string{target}
}
