//go:build !linux

package fsops

func renameNoReplace(src, dst string) error {
	return linkOrRename(src, dst)
}
