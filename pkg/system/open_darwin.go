package system

func openCommand(target string) (string, []string) {
	return "open", []string{target}
}
