package tui

type entriesLoadedMsg struct {
	posts []post
	errs  []error
}

type errMsg struct {
	err error
}
