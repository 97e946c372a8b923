package services

// sampleTrackerData seeds the dataset on startup so the API serves something
// before the first upload or source refresh.
const sampleTrackerData = `Bidding Authority,Bidding Authority,Tender Capacity,Category,Type,Connectivity,RFS No.,RFS Date,RFS Financial Year,eRA,Financial Year,Company,Group Company,Won Capacity,Final Tariff,Initial Tariff,Status (e-RA/LOA/PPA/COD),Signed PPA Cap. (MW),Remarks,Bid Capacity,Bidding Result,Any Success
SECI,Central,"1,200",Solar,ISTS,ISTS-I,SECI-RFS-2024-01,15-Mar-24,FY 2023-24,12-Jun-24,FY 2024-25,Ecoren Power,Ecoren,300,2.52,2.60,PPA Signed,300,"Lowest tariff, full award",400,Won,Yes
SECI,Central,"1,200",Solar,ISTS,ISTS-I,SECI-RFS-2024-01,15-Mar-24,FY 2023-24,12-Jun-24,FY 2024-25,Avaada Energy,Avaada,200,2.54,2.61,LOA Issued,,Partial award,350,Won,y
SECI,Central,"1,200",Solar,ISTS,ISTS-I,SECI-RFS-2024-01,15-Mar-24,FY 2023-24,12/06/24,FY 2024-25,Sunfield Renewables,Sunfield,0,,2.58,e-RA Completed,,,250,Lost,No
GUVNL,State,500,Solar,Intra-state,STU,GUVNL-PH-XII,02/03/24,FY 2023-24,28-Aug-24,FY 2024-25,Torrent Power,Torrent,150,2.71,2.75,COD Achieved,150,,200,Won,Yes
GUVNL,State,500,Solar,Intra-state,STU,GUVNL-PH-XII,02/03/24,FY 2023-24,28-Aug-24,FY 2024-25,Juniper Green,Juniper,0,,2.79,Not Applicable,,Bid disqualified,180,Lost,n
NTPC,Central,750,Wind,ISTS,ISTS-II,NTPC-W-2024-03,05-Jul-24,FY 2024-25,03-Oct-24,FY 2024-25,Greenleap Energy,Greenleap,250,3.18,3.25,LOA Issued,,,300,Won,true
NHPC,Central,600,Hybrid,ISTS,ISTS-I,NHPC-H-2024-02,20-Dec-24,FY 2024-25,14/01/25,FY 2024-25,Ecoren Power,Ecoren,180,3.05,3.12,PPA Signed,180,,240,Won,Yes
MSEDCL,State,400,Solar,Intra-state,STU,MSEDCL-S-IX,25-Aug-25,FY 2025-26,,FY 2025-26,Sahyadri Solar,Sahyadri,,,3.10,,,Results awaited,160,,
NTPC,Central,750,Wind,ISTS,ISTS-II,NTPC-W-2024-03,05-Jul-24,FY 2024-25,03-Oct-24,FY 2024-25,Vayu Urja,Vayu Urja,0,,3.24,e-RA Completed,,,280,Lost,No
`
