package main

// createMaster ensures the master account exists with the given credentials;
// an existing master gets its name and password reset instead.
func (cli *commandLine) createMaster(name, email, pwd string) error {
	_, err := cli.usrSvc.EnsureMaster(name, email, pwd)
	return err
}
