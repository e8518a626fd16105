package addon

// InstallListener follows an install handle through its lifecycle. The
// handle calls every hook that applies, so implementations must provide
// them all; embed NopInstallListener to inherit no-op defaults.
type InstallListener interface {
	// OnNewInstall is called when the listener learns about the handle.
	OnNewInstall(h InstallHandle)
	OnDownloadStarted(h InstallHandle)
	// OnDownloadProgress reports done out of total bytes. total is zero when unknown.
	OnDownloadProgress(h InstallHandle, done, total int64)
	OnDownloadEnded(h InstallHandle)
	OnDownloadCancelled(h InstallHandle)
	OnDownloadFailed(h InstallHandle, err error)
	OnInstallStarted(h InstallHandle)
	// OnInstallEnded carries a snapshot of the add-on as installed.
	OnInstallEnded(h InstallHandle, installed Entity)
	OnInstallCancelled(h InstallHandle)
	OnInstallFailed(h InstallHandle, err error)
	// OnExternalInstall reports an add-on installed without an install handle.
	OnExternalInstall(installed Entity)
}

// NopInstallListener implements every InstallListener hook as a no-op.
type NopInstallListener struct{}

var _ InstallListener = NopInstallListener{}

func (NopInstallListener) OnNewInstall(InstallHandle)                     {}
func (NopInstallListener) OnDownloadStarted(InstallHandle)                {}
func (NopInstallListener) OnDownloadProgress(InstallHandle, int64, int64) {}
func (NopInstallListener) OnDownloadEnded(InstallHandle)                  {}
func (NopInstallListener) OnDownloadCancelled(InstallHandle)              {}
func (NopInstallListener) OnDownloadFailed(InstallHandle, error)          {}
func (NopInstallListener) OnInstallStarted(InstallHandle)                 {}
func (NopInstallListener) OnInstallEnded(InstallHandle, Entity)           {}
func (NopInstallListener) OnInstallCancelled(InstallHandle)               {}
func (NopInstallListener) OnInstallFailed(InstallHandle, error)           {}
func (NopInstallListener) OnExternalInstall(Entity)                       {}
